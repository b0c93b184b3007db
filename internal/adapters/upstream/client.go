// Package upstream reads pending fees, rental payments and member profits from the
// membership, rental and investment modules over HTTP.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	upstreamport "github.com/marmotkit/asset-mgmt-accounting/internal/core/ports/upstream"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const maxBodyBytes = 8 << 20

// Config describes how to reach and authenticate against the upstream modules.
// ClientID switches authentication to the OAuth2 client-credentials flow; otherwise
// APIToken, when set, is sent as a static bearer token.
type Config struct {
	BaseURL      string
	APIToken     string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client implements the upstream source ports.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ upstreamport.Sources = (*Client)(nil)

// NewClient builds a client. ctx is only used by the token source to fetch tokens.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var httpClient *http.Client
	switch {
	case cfg.ClientID != "":
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		httpClient = cc.Client(ctx)
	case cfg.APIToken != "":
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIToken, TokenType: "Bearer"}))
	default:
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	return &Client{baseURL: base, httpClient: httpClient}, nil
}

func (c *Client) ListPendingFees(ctx context.Context) ([]domain.PendingFee, error) {
	wire, err := getList[feeDTO](ctx, c, "/fees")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PendingFee, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) ListPendingRentals(ctx context.Context) ([]domain.PendingRental, error) {
	wire, err := getList[rentalDTO](ctx, c, "/rental-payments")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PendingRental, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

func (c *Client) ListPendingProfits(ctx context.Context) ([]domain.PendingProfit, error) {
	wire, err := getList[profitDTO](ctx, c, "/member-profits")
	if err != nil {
		return nil, err
	}
	out := make([]domain.PendingProfit, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}
	return out, nil
}

// getList fetches path?status=pending and accepts either a bare JSON array or a
// {"data": [...]} envelope.
func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = url.Values{"status": {"pending"}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: GET %s: %v", apperrors.ErrUpstream, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", apperrors.ErrUpstream, path, err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: GET %s returned status %d", apperrors.ErrUpstream, path, resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: decoding %s: %v", apperrors.ErrUpstream, path, err)
		}
		return items, nil
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", apperrors.ErrUpstream, path, err)
	}
	if envelope.Data == nil {
		return []T{}, nil
	}
	return envelope.Data, nil
}
