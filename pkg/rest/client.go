package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopfront/pkg/fault"
)

// Client talks JSON to the storefront backend. It owns status-to-fault
// classification so callers only ever see fault errors; backend error
// codes are preserved on the fault for adapters to translate, never
// surfaced in messages.
type Client struct {
	base string
	hc   *http.Client
	log  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
		log:  log,
	}
}

// Do issues one request and decodes a 2xx JSON body into out (which may
// be nil). authToken, when set, is appended as the auth query parameter.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, authToken string) error {
	u := c.base + "/" + strings.TrimLeft(path, "/")
	if authToken != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "auth=" + url.QueryEscape(authToken)
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fault.Wrap(fault.KindNetwork, "backend unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.Wrap(fault.KindNetwork, "read backend response", err)
	}

	c.log.Debug("backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return faultFromResponse(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fault.Wrap(fault.KindNetwork, "decode backend response", err)
	}
	return nil
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func faultFromResponse(status int, raw []byte) *fault.Error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)

	fe := fault.New(kindFromStatus(status), messageForStatus(status))
	fe.Code = eb.Error.Message
	return fe
}

func kindFromStatus(status int) fault.Kind {
	switch status {
	case http.StatusBadRequest:
		return fault.KindValidation
	case http.StatusUnauthorized:
		return fault.KindAuthentication
	case http.StatusForbidden:
		return fault.KindAuthorization
	case http.StatusNotFound, http.StatusConflict, http.StatusPreconditionFailed:
		return fault.KindConflict
	default:
		return fault.KindNetwork
	}
}

func messageForStatus(status int) string {
	switch kindFromStatus(status) {
	case fault.KindValidation:
		return "the backend rejected the request"
	case fault.KindAuthentication:
		return "your session is not valid, sign in again"
	case fault.KindAuthorization:
		return "you are not allowed to do that"
	case fault.KindConflict:
		return "the item changed on the backend, refresh and try again"
	default:
		return "the backend is unavailable, try again later"
	}
}
