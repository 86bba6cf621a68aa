package llm

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

func TestGenerateJSON_SendsJSONMode(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"response": `{"summary":"ok"}`, "done": true})
	}))
	defer srv.Close()

	c := NewOllama(srv.URL+"/", "qwen2.5-coder:14b")
	out, err := c.GenerateJSON(context.Background(), "hi")
	require.NoError(t, err)

	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, "qwen2.5-coder:14b", got.Model)
	assert.Equal(t, "hi", got.Prompt)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
}

func TestGenerateJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "m").GenerateJSON(context.Background(), "hi")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "model not found", statusErr.Body)
}

func TestGenerateJSON_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "m").GenerateJSON(context.Background(), "hi")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "/api/generate", decodeErr.Endpoint)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		_ = json.NewEncoder(w).Encode(chatResponse{Message: Message{Role: "assistant", Content: "echo: " + req.Messages[0].Content}})
	}))
	defer srv.Close()

	out, err := NewOllama(srv.URL, "m").Chat(context.Background(), []Message{{Role: "user", Content: "ping"}})
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", out)
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"qwen2.5-coder:14b","size":9000000000}]}`))
	}))
	defer srv.Close()

	models, err := NewOllama(srv.URL, "").ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "qwen2.5-coder:14b", models[0].Name)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewOllama(url, "m").GenerateJSON(context.Background(), "hi")
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "1.5 GB", FormatSize(1536*1024*1024))
	assert.Equal(t, "512 MB", FormatSize(512*1024*1024))
}
