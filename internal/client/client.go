// Package client is the typed boundary to the content-store API. Every
// operation is a single request/response with no caching and no implicit
// retry; navigations re-fetch.
//
// The edit key only ever travels inside the body of a mutating request.
// It is never sent on reads, never compared locally, and never stored
// here.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/model"
)

const defaultTimeout = 60 * time.Second

// Client talks to one inkwell server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

// List fetches all records, newest first. Bodies are included; callers
// that only need summaries should not render them.
func (c *Client) List(ctx context.Context) ([]model.Record, error) {
	var records []model.Record
	if err := c.do(ctx, http.MethodGet, "/api/blogs", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get fetches one record by identifier.
func (c *Client) Get(ctx context.Context, id string) (model.Record, error) {
	var rec model.Record
	if err := c.do(ctx, http.MethodGet, "/api/blogs/"+id, nil, &rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// Create publishes a new record. The server assigns the identifier and
// the derived fields; the edit key in fields authorizes later mutations
// and is not echoed back.
func (c *Client) Create(ctx context.Context, fields model.Fields) (model.Record, error) {
	var rec model.Record
	if err := c.do(ctx, http.MethodPost, "/api/blogs", fields, &rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// Update replaces the record's title and body. The author name is fixed
// at creation; the server ignores attempts to change it.
func (c *Client) Update(ctx context.Context, id string, fields model.Fields) (model.Record, error) {
	var rec model.Record
	if err := c.do(ctx, http.MethodPut, "/api/blogs/"+id, fields, &rec); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// Delete removes a record. editKey must be the key chosen at creation.
func (c *Client) Delete(ctx context.Context, id, editKey string) error {
	body := struct {
		EditKey string `json:"editKey"`
	}{EditKey: editKey}
	return c.do(ctx, http.MethodDelete, "/api/blogs/"+id, body, nil)
}

type textRequest struct {
	Text string `json:"text"`
}

type textResult struct {
	Result string `json:"result"`
}

// GenerateOutline asks for a structural outline for the given title.
func (c *Client) GenerateOutline(ctx context.Context, title string) (string, error) {
	return c.transform(ctx, "outline", title)
}

// PolishContent asks for a full rewrite of the given body.
func (c *Client) PolishContent(ctx context.Context, body string) (string, error) {
	return c.transform(ctx, "polish", body)
}

// GenerateSuggestions asks for writing suggestions on the given body,
// which may be empty.
func (c *Client) GenerateSuggestions(ctx context.Context, body string) (string, error) {
	return c.transform(ctx, "suggestions", body)
}

func (c *Client) transform(ctx context.Context, op, text string) (string, error) {
	var out textResult
	if err := c.do(ctx, http.MethodPost, "/api/ai/"+op, textRequest{Text: text}, &out); err != nil {
		return "", TransformError{Op: op, Err: err}
	}
	return out.Result, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("content store unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFrom(resp, path)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// errorFrom maps an error response onto the client's error taxonomy.
// The error code is authoritative; the HTTP status is the fallback for
// servers that return a bare status.
func (c *Client) errorFrom(resp *http.Response, path string) error {
	var env errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	_ = json.Unmarshal(raw, &env)

	code := env.Error.Code
	switch {
	case code == "not_found" || resp.StatusCode == http.StatusNotFound:
		return NotFoundError{ID: lastSegment(path)}
	case code == "invalid_edit_key" || resp.StatusCode == http.StatusForbidden:
		return ErrInvalidEditKey
	case code == "validation_error" || resp.StatusCode == http.StatusUnprocessableEntity:
		return ValidationError{Fields: env.Error.Details}
	}
	msg := env.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("content store: %s", msg)
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
