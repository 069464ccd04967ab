package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
)

func newKeyDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:keyrepo_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.APIKey{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateAPIKey_InsertsRow(t *testing.T) {
	db := newKeyDB(t)
	start := time.Now().UTC()

	if _, err := CreateAPIKey(context.Background(), db, "k1", "CI bot", "sk_abc", "u1"); err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}

	var got domain.APIKey
	if err := db.First(&got, "id = ?", "k1").Error; err != nil {
		t.Fatalf("load key: %v", err)
	}
	if got.Name != "CI bot" || got.Key != "sk_abc" || got.UserID != "u1" {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.CreatedAt.Before(start.Add(-time.Minute)) {
		t.Fatalf("CreatedAt not set reasonably: %v", got.CreatedAt)
	}
}

func TestCreateAPIKey_DuplicateSecret_ReturnsError(t *testing.T) {
	db := newKeyDB(t)
	if _, err := CreateAPIKey(context.Background(), db, "k1", "a", "sk_same", "u1"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := CreateAPIKey(context.Background(), db, "k2", "b", "sk_same", "u2"); err == nil {
		t.Fatalf("expected unique index violation on key")
	}
}

func TestListAPIKeys_OrdersByCreatedAtAsc_AndScopesToUser(t *testing.T) {
	db := newKeyDB(t)
	base := time.Now().UTC()
	rows := []domain.APIKey{
		{ID: "k2", Name: "second", Key: "sk_2", UserID: "u1", CreatedAt: base.Add(time.Minute)},
		{ID: "k1", Name: "first", Key: "sk_1", UserID: "u1", CreatedAt: base},
		{ID: "k3", Name: "other", Key: "sk_3", UserID: "u2", CreatedAt: base},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := ListAPIKeys(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("ListAPIKeys: %v", err)
	}
	if len(got) != 2 || got[0].ID != "k1" || got[1].ID != "k2" {
		t.Fatalf("unexpected order/scope: %+v", got)
	}
}

func TestDeleteAPIKey_RemovesOwnRow(t *testing.T) {
	db := newKeyDB(t)
	if err := db.Create(&domain.APIKey{ID: "k1", Name: "n", Key: "sk_1", UserID: "u1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := DeleteAPIKey(context.Background(), db, "k1", "u1"); err != nil {
		t.Fatalf("DeleteAPIKey: %v", err)
	}
	var n int64
	db.Model(&domain.APIKey{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected row gone, have %d", n)
	}
}

func TestDeleteAPIKey_WrongOwnerOrMissing_ErrNotFound(t *testing.T) {
	db := newKeyDB(t)
	if err := db.Create(&domain.APIKey{ID: "k1", Name: "n", Key: "sk_1", UserID: "u1"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := DeleteAPIKey(context.Background(), db, "k1", "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong owner: want ErrNotFound, got %v", err)
	}
	if err := DeleteAPIKey(context.Background(), db, "nope", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing id: want ErrNotFound, got %v", err)
	}

	// Row untouched by either attempt.
	var n int64
	db.Model(&domain.APIKey{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected row to survive, have %d", n)
	}
}

func TestResolveAPIKeyOwner(t *testing.T) {
	db := newKeyDB(t)
	if err := db.Create(&domain.APIKey{ID: "k1", Name: "n", Key: "sk_secret", UserID: "u9"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	owner, err := ResolveAPIKeyOwner(context.Background(), db, "sk_secret")
	if err != nil || owner != "u9" {
		t.Fatalf("ResolveAPIKeyOwner = %q, %v", owner, err)
	}

	if _, err := ResolveAPIKeyOwner(context.Background(), db, "sk_unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown key: want ErrNotFound, got %v", err)
	}
}
