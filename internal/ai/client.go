// Package ai is a thin client for an OpenAI-compatible chat-completion API.
// It exposes the two capabilities the application needs: a one-shot category
// suggestion from free text, and multi-turn Q&A over supplied message
// history. Both are network-bound and fallible; callers decide how to
// degrade (the services fall back to the keyword rules engine).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const suggestSystemPrompt = "You are a personal finance assistant. " +
	"Reply with a single short expense category label for the described purchase, " +
	"such as Food, Transport, Housing, Utilities, Entertainment, Health, Education, Shopping or Other. " +
	"Reply with the label only."

var ErrEmptyCompletion = errors.New("empty completion")

// Message is one turn of a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds a client for the given endpoint. baseURL is the API root
// (the /chat/completions path is appended).
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat sends the message history and returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat API status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if reply == "" {
		return "", ErrEmptyCompletion
	}
	return reply, nil
}

// SuggestCategory asks for a one-shot category label for the description.
// Only the first line of the reply is kept, so a chatty model still yields a
// usable short label.
func (c *Client) SuggestCategory(ctx context.Context, description string) (string, error) {
	reply, err := c.Chat(ctx, []Message{
		{Role: RoleSystem, Content: suggestSystemPrompt},
		{Role: RoleUser, Content: description},
	})
	if err != nil {
		return "", err
	}
	label, _, _ := strings.Cut(reply, "\n")
	return strings.TrimSpace(label), nil
}
