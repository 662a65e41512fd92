package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/models"
)

func TestDeliverSigned(t *testing.T) {
	var gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(SignatureHeader)
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	ev := NewEvent(EventRunCompleted, map[string]int{"raids": 3})
	require.NoError(t, Deliver(context.Background(), srv.URL, "s3cret", ev))

	assert.Equal(t, Sign("s3cret", gotBody), gotSig)

	var decoded Event
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, EventRunCompleted, decoded.Type)
	assert.Equal(t, ev.RunID, decoded.RunID)
}

func TestDeliverUnsigned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(SignatureHeader))
	}))
	defer srv.Close()

	require.NoError(t, Deliver(context.Background(), srv.URL, "", NewEvent(EventLayoutDrifted, nil)))
}

func TestDeliverRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	delays := []time.Duration{0, time.Millisecond, time.Millisecond}
	require.NoError(t, DeliverRetry(context.Background(), srv.URL, "", NewEvent(EventRunCompleted, nil), delays))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliverRetryExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := DeliverRetry(context.Background(), srv.URL, "", NewEvent(EventRunCompleted, nil), []time.Duration{0, time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestSignIsStable(t *testing.T) {
	body := []byte(`{"type":"run.completed"}`)
	assert.Equal(t, Sign("k", body), Sign("k", body))
	assert.NotEqual(t, Sign("k", body), Sign("other", body))
}

func TestSummarizeAndDrifted(t *testing.T) {
	ok := &models.ListResponse{
		Kind:     models.KindRaids,
		Success:  true,
		Count:    4,
		Failures: []*models.ItemError{models.MissingNode(models.KindRaids, 2, "img")},
		Drift:    &models.DriftReport{Distance: 30, Drifted: true},
	}
	failed := &models.ListResponse{
		Kind:  models.KindEggs,
		Error: &models.ErrorDetail{Code: models.ErrCodeFetch},
	}

	sum := Summarize(ok, nil, failed)
	require.Len(t, sum, 2)
	assert.Equal(t, 1, sum[0].Failures)
	assert.Equal(t, 4, sum[0].Count)
	assert.False(t, sum[1].Success)
	assert.Equal(t, models.ErrCodeFetch, sum[1].Error.Code)

	assert.Equal(t, []*models.ListResponse{ok}, Drifted(ok, nil, failed))
}
