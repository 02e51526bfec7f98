package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/campusdesk/campusdesk/internal/domain"
)

func setupActionRouter(t *testing.T) (*gin.Engine, *domain.MockActionItemRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	repo := domain.NewMockActionItemRepository(ctrl)

	r := gin.New()
	h := NewActionHandler(repo, nil)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, repo
}

func TestHandleCreateAction(t *testing.T) {
	r, repo := setupActionRouter(t)

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, item *domain.ActionItem) error {
			if item.Text != "submit report" || item.Date != "2026-03-02" || item.Time != "10:00" {
				t.Errorf("unexpected item: %+v", item)
			}
			item.ID = "t1"
			item.CreatedAt = time.Now().UTC()
			return nil
		})

	body, _ := json.Marshal(actionRequest{
		Text: "submit report",
		Date: "2026-03-02",
		Time: "10:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201 (body: %s)", w.Code, w.Body.String())
	}

	var created domain.ActionItem
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID != "t1" {
		t.Errorf("id: got %q, want t1", created.ID)
	}
}

func TestHandleCreateActionValidation(t *testing.T) {
	tests := []struct {
		name string
		req  actionRequest
	}{
		{name: "empty text", req: actionRequest{Text: ""}},
		{name: "malformed date", req: actionRequest{Text: "x", Date: "2026-3-2"}},
		{name: "malformed time", req: actionRequest{Text: "x", Date: "2026-03-02", Time: "9:30"}},
		{name: "out of range time", req: actionRequest{Text: "x", Date: "2026-03-02", Time: "24:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupActionRouter(t)

			body, _ := json.Marshal(tt.req)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/actions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", w.Code)
			}
		})
	}
}

func TestHandleGetActionNotFound(t *testing.T) {
	r, repo := setupActionRouter(t)

	repo.EXPECT().Get(gomock.Any(), "missing").Return(nil, domain.ErrActionItemNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/actions/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestHandleCompleteAction(t *testing.T) {
	r, repo := setupActionRouter(t)

	repo.EXPECT().SetCompleted(gomock.Any(), "t1", gomock.Not(gomock.Nil())).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/t1/complete", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
}

func TestHandleReopenAction(t *testing.T) {
	r, repo := setupActionRouter(t)

	repo.EXPECT().SetCompleted(gomock.Any(), "t1", gomock.Nil()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/actions/t1/reopen", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", w.Code)
	}
}

func TestHandleDeleteAction(t *testing.T) {
	r, repo := setupActionRouter(t)

	repo.EXPECT().Delete(gomock.Any(), "t1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/actions/t1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", w.Code)
	}
}
