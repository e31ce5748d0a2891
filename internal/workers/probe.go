package workers

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// TCPProber dials the backend address without sending a request.
type TCPProber struct {
	address string
	dialer  net.Dialer
}

// NewTCPProber builds a prober for the host of baseURL. The port defaults to
// 443 for https and 80 otherwise.
func NewTCPProber(baseURL string, timeout time.Duration) (*TCPProber, error) {
	address, err := dialAddress(baseURL)
	if err != nil {
		return nil, err
	}
	return &TCPProber{address: address, dialer: net.Dialer{Timeout: timeout}}, nil
}

func (p *TCPProber) Probe(ctx context.Context) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	return conn.Close()
}

// Address returns the dialed host:port.
func (p *TCPProber) Address() string {
	return p.address
}

func dialAddress(baseURL string) (string, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return "", ErrEmptyAddress
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("error parsing probe address: %w", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyAddress, baseURL)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
