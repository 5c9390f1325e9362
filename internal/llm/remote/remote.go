// Package remote implements llm.Client against an assistant endpoint that
// speaks the llm action contract over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 200

type Client struct {
	url   string
	token string
	http  *http.Client
}

// New returns a client posting to url. The caller's context bounds each call;
// httpClient may be nil.
func New(url, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{url: url, token: token, http: httpClient}
}

func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Reply, error) {
	body, err := c.post(ctx, llm.NewGenerateRequest(req))
	if err != nil {
		return llm.Reply{}, err
	}

	var reply llm.ActionReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return llm.Reply{}, fmt.Errorf("decoding reply: %w", err)
	}

	return llm.DecodeReply(reply)
}

func (c *Client) MarketNews(ctx context.Context, req llm.NewsRequest) ([]llm.NewsItem, error) {
	if len(req.Investments) == 0 {
		return []llm.NewsItem{}, nil
	}

	body, err := c.post(ctx, llm.NewNewsRequest(req))
	if err != nil {
		return nil, err
	}

	return llm.ParseNews(body), nil
}

func (c *Client) post(ctx context.Context, payload llm.ActionRequest) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", payload.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", payload.Action, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", payload.Action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", payload.Action, err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}

		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assistant endpoint returned %d: %s", e.Code, e.Body)
}
