package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntotao/baby-tracker/pkg/ctxutil"
)

func serveWithRecovery(t *testing.T, h http.HandlerFunc) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()
	Recovery(logger)(h).ServeHTTP(rec, req)
	return rec, logs.String()
}

func TestRecovery_PassesThrough(t *testing.T) {
	rec, logs := serveWithRecovery(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, logs)
}

func TestRecovery_PanicBeforeResponse(t *testing.T) {
	rec, logs := serveWithRecovery(t, func(http.ResponseWriter, *http.Request) {
		panic("nil tenant")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs, `"msg":"http.panic"`)
	assert.Contains(t, logs, `"panic":"nil tenant"`)
	assert.Contains(t, logs, `"request_id":"req-42"`)
	assert.Contains(t, logs, `"response_started":false`)
}

func TestRecovery_PanicAfterResponse(t *testing.T) {
	rec, logs := serveWithRecovery(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("partial"))
		panic("late")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
	assert.Contains(t, logs, `"response_started":true`)
}

func TestRecovery_ReraisesAbort(t *testing.T) {
	h := Recovery(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }),
	)

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
