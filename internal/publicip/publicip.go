// Package publicip discovers the address this machine reaches the internet from.
package publicip

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const DefaultEndpoint = "https://api.ipify.org"

type Resolver struct {
	endpoint string
	http     *http.Client
}

func New(endpoint string) *Resolver {
	return newResolver(endpoint, time.Second, 5*time.Second)
}

func newResolver(endpoint string, waitMin, waitMax time.Duration) *Resolver {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = waitMin
	retryClient.RetryWaitMax = waitMax
	retryClient.Logger = nil

	return &Resolver{endpoint: endpoint, http: retryClient.StandardClient()}
}

// Lookup returns the caller's public IPv4 address.
func (r *Resolver) Lookup(ctx context.Context) (netip.Addr, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("creating request: %w", err)
	}

	res, err := r.http.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("looking up public IP: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return netip.Addr{}, fmt.Errorf("looking up public IP: HTTP %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, 64))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("reading public IP response: %w", err)
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(string(data)))
	if err != nil || !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("looking up public IP: unexpected response %q", data)
	}
	return addr, nil
}
