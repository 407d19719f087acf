// internal/app/system/storeclient/client.go
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/timeouts"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

// maxErrorBody bounds how much of a failed response we read for its message.
const maxErrorBody = 4 << 10

// Client talks to the collection API. It is safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger
}

// New builds a Client for the API rooted at baseURL. A nil httpClient uses
// a dedicated client with no global timeout; per-request budgets come from
// the timeouts package.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse store base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("store base url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{base: u, http: httpClient, log: logger}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) endpoint(segments []string, query url.Values) string {
	u := *c.base
	parts := append([]string{u.Path}, segments...)
	u.Path = "/" + strings.TrimLeft(path.Join(parts...), "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func budget(op string) time.Duration {
	switch op {
	case OpList:
		return timeouts.List()
	case OpCreate, OpPatch:
		return timeouts.Write()
	case OpPing:
		return timeouts.Ping()
	default:
		return timeouts.Read()
	}
}

// do performs one request. body is JSON-encoded when non-nil; out receives
// the decoded 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, collection, op string, segments []string, query url.Values, body, out any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget(op))
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Collection: collection, Operation: op, Cause: errors.Wrap(err, "encode request")}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(segments, query), rdr)
	if err != nil {
		return &RemoteError{Collection: collection, Operation: op, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("store request failed",
			zap.String("method", method),
			zap.String("collection", collection),
			zap.String("request_id", reqID),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		return &RemoteError{Collection: collection, Operation: op, Cause: err}
	}
	defer resp.Body.Close()

	c.log.Debug("store request",
		zap.String("method", method),
		zap.String("collection", collection),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{
			Collection: collection,
			Operation:  op,
			Status:     resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Collection: collection, Operation: op, Status: resp.StatusCode, Cause: errors.Wrap(err, "decode response")}
	}
	return nil
}

// errorMessage pulls {"message": "..."} (or {"error": "..."}) out of an
// error body, falling back to the trimmed text.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(b))
}

// FetchCollection returns every record of a collection as raw JSON,
// optionally narrowed by query-string equality filters.
func (c *Client) FetchCollection(ctx context.Context, name string, query url.Values) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := c.do(ctx, http.MethodGet, name, OpList, []string{name}, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRecord posts a new record and returns the stored record, including
// the id the server assigned.
func (c *Client) CreateRecord(ctx context.Context, name string, fields any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPost, name, OpCreate, []string{name}, nil, fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatchRecord applies a partial update and returns the updated record.
func (c *Client) PatchRecord(ctx context.Context, name string, id models.ID, fields map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.do(ctx, http.MethodPatch, name, OpPatch, []string{name, id.String()}, nil, fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List fetches a collection and decodes each record into T. Records that
// do not decode are skipped and logged rather than failing the whole read.
func List[T any](ctx context.Context, c *Client, name string, query url.Values) ([]T, error) {
	raws, err := c.FetchCollection(ctx, name, query)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			c.log.Warn("skipping undecodable record",
				zap.String("collection", name),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Get fetches one record by id.
func Get[T any](ctx context.Context, c *Client, name string, id models.ID) (T, error) {
	var v T
	err := c.do(ctx, http.MethodGet, name, OpGet, []string{name, id.String()}, nil, nil, &v)
	return v, err
}

// Create posts rec and decodes the stored record into T.
func Create[T any](ctx context.Context, c *Client, name string, rec any) (T, error) {
	var v T
	err := c.do(ctx, http.MethodPost, name, OpCreate, []string{name}, nil, rec, &v)
	return v, err
}

// Patch applies fields to the record and decodes the result into T.
func Patch[T any](ctx context.Context, c *Client, name string, id models.ID, fields map[string]any) (T, error) {
	var v T
	err := c.do(ctx, http.MethodPatch, name, OpPatch, []string{name, id.String()}, nil, fields, &v)
	return v, err
}

// Ping checks that the store answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "", OpPing, []string{"health"}, nil, nil, nil)
}

// Authenticate checks credentials against the store's dedicated login
// endpoint. The password travels in a POST body, never in a query string.
func (c *Client) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	body := map[string]string{"email": email, "password": password}
	var u models.User
	err := c.do(ctx, http.MethodPost, "auth", OpLogin, []string{"auth", "login"}, nil, body, &u)
	if err != nil {
		if re, ok := AsRemote(err); ok && re.Status == http.StatusUnauthorized {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	return u.Public(), nil
}
