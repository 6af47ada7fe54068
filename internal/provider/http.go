package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to a PostgREST-style question bank over HTTPS.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Client for the question bank at baseURL.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("question bank URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("question bank API key is required")
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *Client) RandomQuestions(ctx context.Context, count int, block *int) ([]Question, error) {
	params := map[string]any{
		"p_count": count,
		"p_block": block,
		"p_topic": nil,
	}
	body, err := c.rpc(ctx, "get_random_questions", params)
	if err != nil {
		return nil, err
	}
	return decodeQuestions(body)
}

func (c *Client) QuestionsByIDs(ctx context.Context, ids []string) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "in."+idList(ids))
	body, err := c.get(ctx, "/rest/v1/questions?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return decodeQuestions(body)
}

func (c *Client) RandomPracticals(ctx context.Context, count, block int) ([]Practical, error) {
	params := map[string]any{
		"p_count": count,
		"p_block": block,
	}
	body, err := c.rpc(ctx, "get_random_practicals", params)
	if err != nil {
		return nil, err
	}
	return decodePracticals(body)
}

// rpc calls a stored procedure via POST /rest/v1/rpc/{name}.
func (c *Client) rpc(ctx context.Context, name string, params map[string]any) ([]byte, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc params: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/v1/rpc/"+name, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrRequest{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &ErrRequest{Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ErrRequest{Status: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func decodeQuestions(body []byte) ([]Question, error) {
	if err := validatePayload("question_rows", questionRowsSchema, body); err != nil {
		return nil, err
	}
	var rows []rawQuestion
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &ErrInvalidPayload{Err: err}
	}
	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.normalize()
		if err != nil {
			return nil, &ErrInvalidPayload{Err: err}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func decodePracticals(body []byte) ([]Practical, error) {
	if err := validatePayload("practical_rows", practicalRowsSchema, body); err != nil {
		return nil, err
	}
	var rows []rawPractical
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &ErrInvalidPayload{Err: err}
	}
	practicals := make([]Practical, 0, len(rows))
	for _, row := range rows {
		p, err := row.normalize()
		if err != nil {
			return nil, &ErrInvalidPayload{Err: err}
		}
		practicals = append(practicals, p)
	}
	return practicals, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
