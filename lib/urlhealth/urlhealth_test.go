package urlhealth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testChecker() *Checker {
	return NewChecker(Options{Timeout: time.Second * 5, MaxRedirects: 3})
}

func TestHeadOkIsAccessible(t *testing.T) {
	var sawHead bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			sawHead = true
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.True(t, testChecker().Check(context.Background(), srv.URL))
	require.True(t, sawHead)
}

func TestClientErrorsCountAsAccessible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	require.True(t, testChecker().Check(context.Background(), srv.URL))
}

func TestMethodNotAllowedFallsBackToGet(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.True(t, testChecker().Check(context.Background(), srv.URL))
	require.Equal(t, []string{http.MethodHead, http.MethodGet}, methods)
}

func TestServerErrorIsNotAccessible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	require.False(t, testChecker().Check(context.Background(), srv.URL))
}

func TestConnectionRefusedIsNotAccessible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	require.False(t, testChecker().Check(context.Background(), srv.URL))
}

func TestRedirectLoopIsNotAccessible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	require.False(t, testChecker().Check(context.Background(), srv.URL))
}
