package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)
	return c
}

func TestRandomQuestions(t *testing.T) {
	var gotPath string
	var gotParams map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
		w.Write([]byte(`[
			{"id": 7, "block": 3, "topic": "networking", "statement": "which port does DNS use?",
			 "options": "[\"53\",\"80\",\"443\",\"22\"]", "correct_index": 0}
		]`))
	})

	block := 3
	questions, err := c.RandomQuestions(context.Background(), 10, &block)
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/rpc/get_random_questions", gotPath)
	assert.Equal(t, float64(10), gotParams["p_count"])
	assert.Equal(t, float64(3), gotParams["p_block"])
	assert.Nil(t, gotParams["p_topic"])

	require.Len(t, questions, 1)
	assert.Equal(t, "7", questions[0].ID)
	assert.Equal(t, []string{"53", "80", "443", "22"}, questions[0].Options)
	assert.Equal(t, 0, questions[0].CorrectIndex)
}

func TestRandomQuestionsNilBlock(t *testing.T) {
	var gotParams map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotParams))
		w.Write([]byte(`[]`))
	})

	questions, err := c.RandomQuestions(context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.Nil(t, gotParams["p_block"])
}

func TestQuestionsByIDs(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/rest/v1/questions", r.URL.Path)
		w.Write([]byte(`[
			{"id": "a", "statement": "s", "options": ["x","y"], "correct_index": 1},
			{"id": "b", "statement": "s", "options": ["x","y"], "correct_index": 0}
		]`))
	})

	questions, err := c.QuestionsByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Contains(t, gotQuery, "in.%28a%2Cb%29")
}

func TestQuestionsByIDsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty id list")
	})
	questions, err := c.QuestionsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, questions)
}

func TestRandomPracticals(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/get_random_practicals", r.URL.Path)
		w.Write([]byte(`[
			{"id": "p-1", "block": 4, "title": "subnet plan", "prompt": "design a /26 split",
			 "solution": "four /28s", "assets": {"mermaid": "graph TD"}}
		]`))
	})

	practicals, err := c.RandomPracticals(context.Background(), 1, 4)
	require.NoError(t, err)
	require.Len(t, practicals, 1)
	assert.Equal(t, "subnet plan", practicals[0].Title)
	assert.Equal(t, "graph TD", practicals[0].Assets.Mermaid)
}

func TestErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	})

	_, err := c.RandomQuestions(context.Background(), 5, nil)
	var reqErr *ErrRequest
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Contains(t, reqErr.Body, "permission denied")
}

func TestInvalidPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Missing required statement and options.
		w.Write([]byte(`[{"id": "q-1"}]`))
	})

	_, err := c.RandomQuestions(context.Background(), 5, nil)
	var payloadErr *ErrInvalidPayload
	require.ErrorAs(t, err, &payloadErr)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.RandomQuestions(ctx, 5, nil)
	var reqErr *ErrRequest
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, errors.Is(reqErr.Err, context.Canceled))
}
