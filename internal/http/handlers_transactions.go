package http

import (
	"io"
	"net/http"
	"strings"

	"finanger/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.txs.List(r.Context(), requestUserID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !decodeJSON(w, r, &t) {
		return
	}

	if err := s.txs.Add(r.Context(), requestUserID(r), t); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// updateTransactionRequest carries the record to match and its replacement.
// Transactions have no ids, the old record is the identifier.
type updateTransactionRequest struct {
	Old     core.Transaction `json:"old"`
	Updated core.Transaction `json:"updated"`
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.txs.Update(r.Context(), requestUserID(r), req.Old, req.Updated); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req.Updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if !decodeJSON(w, r, &t) {
		return
	}

	if err := s.txs.Delete(r.Context(), requestUserID(r), t); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type importResponse struct {
	Imported          int `json:"imported"`
	SkippedMalformed  int `json:"skippedMalformed"`
	SkippedDuplicates int `json:"skippedDuplicates"`
}

// handleImportCSV accepts the CSV either as a multipart upload under the
// "file" field or as the raw request body.
func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	body := io.Reader(r.Body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing file field")
			return
		}
		defer file.Close()
		body = file
	}

	result, err := s.txs.ImportCSV(r.Context(), requestUserID(r), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Imported:          len(result.Imported),
		SkippedMalformed:  result.SkippedMalformed,
		SkippedDuplicates: result.SkippedDuplicates,
	})
}
