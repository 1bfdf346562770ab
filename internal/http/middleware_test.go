package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/copperline/bizportal/internal/domain/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequirePolicy_DenyOutcomes(t *testing.T) {
	t.Parallel()

	auth := newFakeAuthService()
	customerSession := auth.addSession("sess-cust", customerPrincipal("EXT-9"))
	adminSession := auth.addSession("sess-admin", adminPrincipal())

	tests := []struct {
		name       string
		policy     domainauth.Policy
		sessionID  string
		wantStatus int
	}{
		{"anonymous on authenticated route", domainauth.Authenticated(), "", http.StatusUnauthorized},
		{"stale session on authenticated route", domainauth.Authenticated(), "sess-gone", http.StatusUnauthorized},
		{"customer on admin route", domainauth.RoleExact(domainauth.RoleAdmin), customerSession, http.StatusForbidden},
		{"admin on admin route", domainauth.RoleExact(domainauth.RoleAdmin), adminSession, http.StatusOK},
		{"customer on authenticated route", domainauth.Authenticated(), customerSession, http.StatusOK},
		{"anonymous on open route", domainauth.Open(), "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequirePolicy(auth, tt.policy)(okHandler())
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.sessionID != "" {
				req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: tt.sessionID})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequirePolicy_SessionReachesHandler(t *testing.T) {
	t.Parallel()

	auth := newFakeAuthService()
	sessionID := auth.addSession("sess-1", adminPrincipal())

	var seen *domainauth.Session
	handler := RequireAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "sess-1", seen.ID)
	assert.Equal(t, domainauth.RoleAdmin, seen.Principal.Role)
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()

	auth := newFakeAuthService()
	sessionID := auth.addSession("sess-1", customerPrincipal("EXT-9"))

	var seen *domainauth.Session
	handler := OptionalAuth(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("anonymous passes through", func(t *testing.T) {
		seen = nil
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("session attached when present", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: sessionID})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "sess-1", seen.ID)
	})
}

func TestRecover_PanicBecomes500(t *testing.T) {
	t.Parallel()

	handler := Recover(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type captureSink struct {
	mu      sync.Mutex
	counts  map[string]int64
	timings map[string]int
	tags    map[string]string
}

func newCaptureSink() *captureSink {
	return &captureSink{counts: make(map[string]int64), timings: make(map[string]int)}
}

func (s *captureSink) Count(name string, value int64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name] += value
	s.tags = tags
}

func (s *captureSink) Gauge(string, float64, map[string]string) {}

func (s *captureSink) Timing(name string, _ time.Duration, _ map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timings[name]++
}

func TestMetrics_EmitsTimingAndCount(t *testing.T) {
	t.Parallel()

	sink := newCaptureSink()
	handler := Metrics(sink)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, int64(1), sink.counts["http.requests"])
	assert.Equal(t, 1, sink.timings["http.request"])
	assert.Equal(t, "GET", sink.tags["method"])
	assert.Equal(t, "418", sink.tags["status"])
}

func TestMetrics_NilSinkPassesThrough(t *testing.T) {
	t.Parallel()

	handler := Metrics(nil)(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogging_PreservesStatus(t *testing.T) {
	t.Parallel()

	handler := Logging(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
