package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jxdlabs/go-feedback-backend/internal/domain"
	"github.com/jxdlabs/go-feedback-backend/internal/services"
)

// ---------- test DB + env ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:ingest_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&domain.Feedback{}, &domain.Tag{}, &domain.APIKey{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newIngestEnv wires real services over an in-memory DB behind the ingestion
// route and returns the router plus a valid key secret for "u1".
func newIngestEnv(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	keySvc := &services.APIKeyService{DB: db}
	fbSvc := &services.FeedbackService{DB: db}

	k, err := keySvc.Generate(context.Background(), "u1", "test key")
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	r := gin.New()
	h := New(fbSvc, keySvc)
	r.POST("/api/feedback", h.IngestFeedback)
	return r, db, k.Key
}

func postIngest(t *testing.T, r *gin.Engine, key string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(HeaderAPIKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---------- scenarios ----------

func TestIngestFeedback_MissingHeader_401(t *testing.T) {
	r, db, _ := newIngestEnv(t)

	w := postIngest(t, r, "", `{"content":"hi","tags":[{"id":"t1","content":"x"}]}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var got IngestError
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Error != "Missing x-api-key header" {
		t.Fatalf("error = %q", got.Error)
	}

	var n int64
	db.Model(&domain.Feedback{}).Count(&n)
	if n != 0 {
		t.Fatalf("unauthenticated request persisted %d rows", n)
	}
}

func TestIngestFeedback_InvalidKey_401(t *testing.T) {
	r, db, _ := newIngestEnv(t)

	w := postIngest(t, r, "sk_not_a_real_key", `{"content":"hi","tags":[{"id":"t1","content":"x"}]}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var got IngestError
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Error != "Invalid API key" {
		t.Fatalf("error = %q", got.Error)
	}

	var n int64
	db.Model(&domain.Feedback{}).Count(&n)
	if n != 0 {
		t.Fatalf("rejected request persisted %d rows", n)
	}
}

func TestIngestFeedback_ValidationFailure_400_WithDetails(t *testing.T) {
	r, db, key := newIngestEnv(t)

	// Both problems reported in one response.
	w := postIngest(t, r, key, `{"content":"","tags":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var got IngestError
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Error != "Invalid request body" {
		t.Fatalf("error = %q", got.Error)
	}
	paths := map[string]bool{}
	for _, d := range got.Details {
		paths[d.Path] = true
	}
	if !paths["content"] || !paths["tags"] {
		t.Fatalf("details missing fields: %+v", got.Details)
	}

	var n int64
	db.Model(&domain.Feedback{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid request persisted %d rows", n)
	}
}

func TestIngestFeedback_TagFieldIssues_UsePositionalPaths(t *testing.T) {
	r, _, key := newIngestEnv(t)

	w := postIngest(t, r, key, `{"content":"hi","tags":[{"id":"t1","content":"ok"},{"id":"","content":""}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var got IngestError
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	paths := map[string]bool{}
	for _, d := range got.Details {
		paths[d.Path] = true
	}
	if !paths["tags.1.id"] || !paths["tags.1.content"] {
		t.Fatalf("want positional tag paths, got %+v", got.Details)
	}
}

func TestIngestFeedback_MalformedJSON_400(t *testing.T) {
	r, _, key := newIngestEnv(t)

	w := postIngest(t, r, key, `{"content": `)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var got IngestError
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Error != "Invalid request body" || len(got.Details) == 0 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestIngestFeedback_Success_201(t *testing.T) {
	r, db, key := newIngestEnv(t)

	w := postIngest(t, r, key, `{"content":"Great app","tags":[{"id":"t1","content":"praise"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", w.Code, w.Body.String())
	}
	var got IngestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Success {
		t.Fatalf("success flag not set: %+v", got)
	}
	if got.Feedback.Content != "Great app" || got.Feedback.UserID != "u1" || got.Feedback.Status != domain.StatusNew {
		t.Fatalf("unexpected feedback: %+v", got.Feedback)
	}
	if got.Feedback.ID == "" || got.Feedback.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields missing: %+v", got.Feedback)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != "t1" || got.Tags[0].FeedbackID != got.Feedback.ID {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}

	// Owner came from the key, tags landed in the same write.
	var fb domain.Feedback
	if err := db.Preload("Tags").First(&fb, "id = ?", got.Feedback.ID).Error; err != nil || fb.UserID != "u1" || len(fb.Tags) != 1 {
		t.Fatalf("persisted row mismatch: err=%v row=%+v", err, fb)
	}
}

func TestIngestFeedback_DuplicateTagID_500_WithMessage(t *testing.T) {
	r, _, key := newIngestEnv(t)

	first := postIngest(t, r, key, `{"content":"one","tags":[{"id":"dup","content":"x"}]}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("seed status = %d", first.Code)
	}

	w := postIngest(t, r, key, `{"content":"two","tags":[{"id":"dup","content":"x"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500; body=%s", w.Code, w.Body.String())
	}
	var got IngestError
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Error != "Internal server error" || got.Message == "" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

// ---------- stub-backed edge: resolver infrastructure failure ----------

type stubKeySvc struct {
	resolve func(ctx context.Context, key string) (string, error)
}

func (s stubKeySvc) Generate(ctx context.Context, ownerID, name string) (*domain.APIKey, error) {
	return nil, errors.New("not implemented")
}
func (s stubKeySvc) List(ctx context.Context, ownerID string) ([]domain.APIKey, error) {
	return nil, errors.New("not implemented")
}
func (s stubKeySvc) Revoke(ctx context.Context, ownerID, keyID string) error {
	return errors.New("not implemented")
}
func (s stubKeySvc) ResolveOwner(ctx context.Context, key string) (string, error) {
	return s.resolve(ctx, key)
}

type stubFbSvc struct {
	create func(ctx context.Context, ownerID, content string, tags []domain.Tag) (*domain.Feedback, []domain.Tag, error)
}

func (s stubFbSvc) Create(ctx context.Context, ownerID, content string, tags []domain.Tag) (*domain.Feedback, []domain.Tag, error) {
	return s.create(ctx, ownerID, content, tags)
}
func (s stubFbSvc) List(ctx context.Context, ownerID string, statuses []string) ([]domain.Feedback, error) {
	return nil, errors.New("not implemented")
}
func (s stubFbSvc) ListPage(ctx context.Context, ownerID string, statuses []string, page, pageSize int) ([]domain.Feedback, int64, error) {
	return nil, 0, errors.New("not implemented")
}
func (s stubFbSvc) UpdateStatus(ctx context.Context, ownerID, feedbackID, status string) (*domain.Feedback, error) {
	return nil, errors.New("not implemented")
}

func TestIngestFeedback_ResolverInfrastructureError_500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(stubFbSvc{}, stubKeySvc{
		resolve: func(ctx context.Context, key string) (string, error) {
			return "", errors.New("db gone")
		},
	})
	r.POST("/api/feedback", h.IngestFeedback)

	w := postIngest(t, r, "sk_whatever", `{"content":"hi","tags":[{"id":"t1","content":"x"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Internal server error") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
