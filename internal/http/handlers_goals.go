package http

import (
	"net/http"

	"finanger/internal/core"
)

// goalResponse extends the stored goal with its derived progress fields.
type goalResponse struct {
	core.Goal
	ProgressPercentage float64 `json:"progressPercentage"`
	IsCompleted        bool    `json:"isCompleted"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		Goal:               g,
		ProgressPercentage: g.ProgressPercentage(),
		IsCompleted:        g.IsCompleted(),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if !decodeJSON(w, r, &g) {
		return
	}

	stored, err := s.goals.Create(r.Context(), requestUserID(r), g)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(stored))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	g, err := s.goals.Get(r.Context(), requestUserID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var g core.Goal
	if !decodeJSON(w, r, &g) {
		return
	}
	g.ID = r.PathValue("id")
	userID := requestUserID(r)
	g.UserID = userID

	if err := s.goals.Update(r.Context(), userID, g); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), requestUserID(r), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
