package publicip

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "198.51.100.20\n")
	}))
	defer srv.Close()

	addr, err := New(srv.URL).Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.20", addr.String())
}

func TestLookup_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "198.51.100.21")
	}))
	defer srv.Close()

	addr, err := newResolver(srv.URL, time.Millisecond, time.Millisecond).Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.21", addr.String())
	assert.Equal(t, int32(3), calls.Load())
}

func TestLookup_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "client error", status: http.StatusForbidden, body: "denied"},
		{name: "not an address", status: http.StatusOK, body: "<html>"},
		{name: "ipv6", status: http.StatusOK, body: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := newResolver(srv.URL, time.Millisecond, time.Millisecond).Lookup(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestNew_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, New("").endpoint)
}
