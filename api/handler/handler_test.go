package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/cache"
	"github.com/use-agent/leekduck/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLister struct {
	calls atomic.Int32
	last  models.ListQuery
	resp  *models.ListResponse
}

func (f *fakeLister) Scrape(_ context.Context, kind models.Kind, q models.ListQuery) *models.ListResponse {
	f.calls.Add(1)
	f.last = q
	r := *f.resp
	r.Kind = kind
	return &r
}

func serve(h gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/list", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListBindsQuery(t *testing.T) {
	l := &fakeLister{resp: &models.ListResponse{Success: true, Records: []models.Event{}}}
	w := serve(List(models.KindEvents, l, nil, nil), "/list?label=current&merge=false")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "current", l.last.Label)
	require.NotNil(t, l.last.Merge)
	assert.False(t, *l.last.Merge)
}

func TestListDefaultsMerge(t *testing.T) {
	l := &fakeLister{resp: &models.ListResponse{Success: true}}
	serve(List(models.KindEvents, l, nil, nil), "/list")
	require.NotNil(t, l.last.Merge)
	assert.True(t, *l.last.Merge)
}

func TestListRejectsBadLabel(t *testing.T) {
	l := &fakeLister{resp: &models.ListResponse{Success: true}}
	w := serve(List(models.KindEvents, l, nil, nil), "/list?label=past")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int32(0), l.calls.Load())

	var resp models.ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.ErrCodeInvalidInput, resp.Error.Code)
}

func TestListFetchFailureIsBadGateway(t *testing.T) {
	l := &fakeLister{resp: &models.ListResponse{
		Error: &models.ErrorDetail{Code: models.ErrCodeFetch, Message: "boom"},
	}}
	var seen *models.ListResponse
	w := serve(List(models.KindRaids, l, nil, func(r *models.ListResponse) { seen = r }), "/list")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, models.KindRaids, seen.Kind)
}

func TestListCaches(t *testing.T) {
	l := &fakeLister{resp: &models.ListResponse{Success: true, Count: 1}}
	cc := cache.New(4, time.Minute)
	h := List(models.KindEggs, l, cc, nil)

	w := serve(h, "/list?category=x")
	assert.Equal(t, "miss", w.Header().Get("X-Cache"))
	w = serve(h, "/list?category=x")
	assert.Equal(t, "hit", w.Header().Get("X-Cache"))
	assert.Equal(t, int32(1), l.calls.Load())

	serve(h, "/list?category=y")
	assert.Equal(t, int32(2), l.calls.Load())
}

func TestHealth(t *testing.T) {
	w := serve(Health(models.TablesStats{Species: 3}, "1.0", time.Now()), "/list")
	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 3, resp.Tables.Species)

	w = serve(Health(models.TablesStats{}, "1.0", time.Now()), "/list")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
}
