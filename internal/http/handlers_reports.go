package http

import (
	"net/http"
)

func (s *Server) handleReportSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := s.reports.Summary(r.Context(), requestUserID(r),
		q.Get("start"), q.Get("end"), q.Get("currency"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type exportRequest struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	TargetCurrency string `json:"targetCurrency"`
}

func (s *Server) handleRequestExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	exportID, err := s.txs.RequestExport(r.Context(), requestUserID(r),
		req.StartDate, req.EndDate, req.TargetCurrency)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"exportId": exportID})
}
