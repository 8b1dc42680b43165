package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withChiRunID attaches a chi route context carrying "runID" so handlers
// normally mounted via chi.URLParam can be exercised directly with
// httptest, without standing up a full router.
func withChiRunID(ctx context.Context, runID string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("runID", runID)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}

func TestHandleSolveRejectsEmptyBody(t *testing.T) {
	h := NewHandlers(zerolog.Nop())
	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	h.HandleSolve(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSolveStartsRunAndHandleStatusReportsIt(t *testing.T) {
	h := NewHandlers(zerolog.Nop())

	body, err := json.Marshal(SolveRequest{
		Variables:   []string{"x"},
		Inputs:      [][]float64{{1}, {2}, {3}},
		Expected:    [][]float64{{1}, {2}, {3}},
		FitnessMode: "basic",
		TimeSeconds: 1,
		Threads:     1,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/solve", bytes.NewBuffer(body))
	w := httptest.NewRecorder()
	h.HandleSolve(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	runID, ok := resp["run_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, runID)

	time.Sleep(50 * time.Millisecond)

	statusReq := httptest.NewRequestWithContext(withChiRunID(req.Context(), runID), http.MethodGet, "/solve/"+runID, nil)
	statusW := httptest.NewRecorder()
	h.HandleStatus(statusW, statusReq)

	assert.Equal(t, http.StatusOK, statusW.Code)
}

func TestHandleStatusUnknownRun(t *testing.T) {
	h := NewHandlers(zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/solve/does-not-exist", nil)
	req = httptest.NewRequestWithContext(withChiRunID(req.Context(), "does-not-exist"), http.MethodGet, "/solve/does-not-exist", nil)
	w := httptest.NewRecorder()

	h.HandleStatus(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
