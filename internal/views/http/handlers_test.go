package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-directory/vibe-backend/internal/logging"
	"github.com/vibe-directory/vibe-backend/internal/views/repository"
	"github.com/vibe-directory/vibe-backend/internal/views/service"
)

type failingRepository struct{ repository.Repository }

func (failingRepository) MarkViewed(context.Context, string, ...string) (int, error) {
	return 0, assert.AnError
}

func setupRouter(repo repository.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(service.NewTracker(repo, logging.Discard())).Register(r.Group("/api/project-views"))
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestRecordAndRead(t *testing.T) {
	r := setupRouter(repository.NewMemoryRepository())

	for i := 0; i < 2; i++ {
		rr := serve(r, http.MethodPost, "/api/project-views", `{"userId":"0xu","projectId":"p1"}`)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := serve(r, http.MethodPost, "/api/project-views", `{"userId":"0xu","projectIds":["p1","p2"]}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = serve(r, http.MethodGet, "/api/project-views?userId=0xu", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "private, max-age=60", rr.Header().Get("Cache-Control"))
	data := decode(t, rr)["data"].(map[string]any)
	assert.Equal(t, "0xu", data["userId"])
	assert.ElementsMatch(t, []any{"p1", "p2"}, data["viewedProjects"])
	assert.Equal(t, float64(2), data["viewCount"])

	rr = serve(r, http.MethodGet, "/api/project-views?projectId=p1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=300", rr.Header().Get("Cache-Control"))
	data = decode(t, rr)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["viewCount"])

	rr = serve(r, http.MethodGet, "/api/project-views?projectIds=p1,p2,p3", "")
	require.Equal(t, http.StatusOK, rr.Code)
	data = decode(t, rr)["data"].(map[string]any)
	assert.Equal(t, map[string]any{"p1": float64(1), "p2": float64(1), "p3": float64(0)}, data["viewCounts"])
}

func TestBadRequests(t *testing.T) {
	r := setupRouter(repository.NewMemoryRepository())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get without params", http.MethodGet, "/api/project-views", ""},
		{"missing project", http.MethodPost, "/api/project-views", `{"userId":"u"}`},
		{"missing user", http.MethodPost, "/api/project-views", `{"projectId":"p"}`},
		{"empty batch", http.MethodPost, "/api/project-views", `{"userId":"u","projectIds":[]}`},
		{"not json", http.MethodPost, "/api/project-views", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, false, decode(t, rr)["success"])
		})
	}
}

func TestRecord_TrackerFailureIs500(t *testing.T) {
	r := setupRouter(failingRepository{repository.NewMemoryRepository()})

	rr := serve(r, http.MethodPost, "/api/project-views", `{"userId":"u","projectId":"p"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = serve(r, http.MethodPost, "/api/project-views", `{"userId":"u","projectIds":["p"]}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
