package slogx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ailab/authd/pkg/idx"
)

func serveWith(t *testing.T, header string) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("handled")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-Request-ID", header)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	return &buf
}

func TestHTTPMiddlewareAssignsRequestID(t *testing.T) {
	t.Parallel()

	buf := serveWith(t, "")
	require.Contains(t, buf.String(), `"req_id":`)
	require.Contains(t, buf.String(), `"status":200`)
}

func TestHTTPMiddlewareHonorsValidRequestID(t *testing.T) {
	t.Parallel()

	id := idx.New().String()
	buf := serveWith(t, id)
	require.Contains(t, buf.String(), `"req_id":"`+id+`"`)
}

func TestHTTPMiddlewareReplacesGarbageRequestID(t *testing.T) {
	t.Parallel()

	buf := serveWith(t, "../../etc/passwd")
	require.NotContains(t, buf.String(), "etc/passwd")
	require.Contains(t, buf.String(), `"req_id":`)
}
