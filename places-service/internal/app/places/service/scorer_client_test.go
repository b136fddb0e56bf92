package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorerAPIClient_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wonderful place", req.Text)

		json.NewEncoder(w).Encode(scoreResponse{Score: 0.87})
	}))
	defer server.Close()

	client := NewScorerAPIClient(server.URL, 5)

	score, err := client.Score(context.Background(), "wonderful place")

	require.NoError(t, err)
	assert.InDelta(t, 0.87, score, 1e-9)
}

func TestScorerAPIClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewScorerAPIClient(server.URL, 5)

	_, err := client.Score(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrScorerUnavailable)
}

func TestScorerAPIClient_ScoreOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(scoreResponse{Score: 1.5})
	}))
	defer server.Close()

	client := NewScorerAPIClient(server.URL, 5)

	_, err := client.Score(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrScorerUnavailable)
}

func TestScorerAPIClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewScorerAPIClient(server.URL, 5)

	_, err := client.Score(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrScorerUnavailable)
}

func TestScorerAPIClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewScorerAPIClient(server.URL, 1)

	_, err := client.Score(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrScorerUnavailable)
}
