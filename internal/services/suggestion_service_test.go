package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanger/internal/ai"
	"finanger/internal/rules"
)

func TestSuggestionService_FallsBackToRules(t *testing.T) {
	engine, err := rules.LoadEmbedded()
	require.NoError(t, err)

	svc := NewSuggestionService(nil, engine, testLogger())

	got := svc.SuggestCategory(context.Background(), "totally unclassifiable gibberish")
	assert.Equal(t, rules.FallbackCategory, got)
}

func TestSuggestionService_PrefersAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Groceries"}}]}`))
	}))
	defer server.Close()

	engine, err := rules.LoadEmbedded()
	require.NoError(t, err)

	svc := NewSuggestionService(ai.NewClient(server.URL, "test-key", "test-model"), engine, testLogger())

	got := svc.SuggestCategory(context.Background(), "weekly shop at the market")
	assert.Equal(t, "Groceries", got)
}

func TestSuggestionService_AIFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	engine, err := rules.LoadEmbedded()
	require.NoError(t, err)

	svc := NewSuggestionService(ai.NewClient(server.URL, "test-key", "test-model"), engine, testLogger())

	got := svc.SuggestCategory(context.Background(), "nothing matches here")
	assert.Equal(t, rules.FallbackCategory, got)
}

func TestSuggestionService_ChatRequiresClient(t *testing.T) {
	engine, err := rules.LoadEmbedded()
	require.NoError(t, err)

	svc := NewSuggestionService(nil, engine, testLogger())
	_, err = svc.Chat(context.Background(), []ai.Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrChatUnavailable)
}
