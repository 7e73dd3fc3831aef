package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/dmitrymomot/cookiemonster/pkg/cookie"
)

// Verdict is the oracle answer for one replayed cookie pair.
type Verdict struct {
	Valid   bool
	Session map[string]any
}

// Pair is a signed cookie value and its signature.
type Pair struct {
	Data string `json:"data"`
	Sig  string `json:"sig"`
}

// Client speaks the oracle wire protocol. Keep-alives are disabled so that no
// pooled connection outlives the oracle it was opened to.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client for the oracle listening at baseURL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Client{
		base: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{DisableKeepAlives: true},
		},
	}, nil
}

// Verify replays name=data and name.sig=sig against the oracle. A transport or
// protocol failure is returned as an error; a rejected cookie is a Verdict
// with Valid unset.
func (c *Client) Verify(ctx context.Context, name, data, sig string) (Verdict, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return Verdict{}, errors.Join(ErrRequest, err)
	}
	jar.SetCookies(c.base, []*http.Cookie{
		{Name: name, Value: data},
		{Name: cookie.SignatureName(name), Value: sig},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return Verdict{}, errors.Join(ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	client := *c.http
	client.Jar = jar
	resp, err := client.Do(req)
	if err != nil {
		return Verdict{}, errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Verdict{}, fmt.Errorf("%w: unexpected status %d", ErrMalformedResponse, resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Verdict{}, errors.Join(ErrMalformedResponse, err)
	}
	if rejected, _ := body[SentinelKey].(bool); rejected {
		return Verdict{}, nil
	}
	return Verdict{Valid: true, Session: body}, nil
}

// Encode posts payload, a JSON object, and returns the cookie pair the oracle
// signed for name.
func (c *Client) Encode(ctx context.Context, name string, payload []byte) (Pair, error) {
	if err := validatePayload(payload); err != nil {
		return Pair{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String(), bytes.NewReader(payload))
	if err != nil {
		return Pair{}, errors.Join(ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Pair{}, errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return Pair{}, ErrInvalidPayload
	default:
		return Pair{}, fmt.Errorf("%w: unexpected status %d", ErrMalformedResponse, resp.StatusCode)
	}

	var pair Pair
	for _, ck := range resp.Cookies() {
		switch ck.Name {
		case name:
			pair.Data = ck.Value
		case cookie.SignatureName(name):
			pair.Sig = ck.Value
		}
	}
	if pair.Data == "" || pair.Sig == "" {
		return Pair{}, fmt.Errorf("%w: missing %s or %s cookie", ErrMalformedResponse, name, cookie.SignatureName(name))
	}
	return pair, nil
}

// CloseIdleConnections releases any connection still held by the client.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func validatePayload(payload []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(payload, &obj); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	if obj == nil {
		return fmt.Errorf("%w: payload must be a JSON object", ErrInvalidPayload)
	}
	return nil
}
