package http

import (
	"net/http"

	"finanger/internal/ai"
	"finanger/internal/core"
	"finanger/internal/currency"
	"finanger/internal/settings"
)

func (s *Server) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"currencies": currency.Supported()})
}

type convertResponse struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Converted float64 `json:"converted"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := core.ParseAmount(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount parameter")
		return
	}

	from, to := q.Get("from"), q.Get("to")
	converted, err := currency.Convert(amount, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
	})
}

type suggestRequest struct {
	Description string `json:"description"`
}

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category := s.suggestions.SuggestCategory(r.Context(), req.Description)
	writeJSON(w, http.StatusOK, map[string]string{"category": category})
}

type chatRequest struct {
	Messages []ai.Message `json:"messages"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}

	reply, err := s.suggestions.Chat(r.Context(), req.Messages)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.settings.Load(requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var updated settings.Settings
	if !decodeJSON(w, r, &updated) {
		return
	}

	if err := s.settings.Save(requestUserID(r), updated); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
