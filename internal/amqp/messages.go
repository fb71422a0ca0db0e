package amqp

import (
	"encoding/json"
	"time"
)

// ReportExportMessage asks the worker to render a report artifact for one
// user. It carries only the request parameters, the worker reads the
// transactions from the backend itself.
type ReportExportMessage struct {
	ExportID       string    `json:"exportId"`
	UserID         string    `json:"userId"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate,omitempty"`
	TargetCurrency string    `json:"targetCurrency,omitempty"`
	RequestedAt    time.Time `json:"requestedAt"`
}

// NewReportExportMessage creates an export request stamped with the current time.
func NewReportExportMessage(exportID, userID, startDate, endDate, targetCurrency string) *ReportExportMessage {
	return &ReportExportMessage{
		ExportID:       exportID,
		UserID:         userID,
		StartDate:      startDate,
		EndDate:        endDate,
		TargetCurrency: targetCurrency,
		RequestedAt:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReportExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportExportMessageFromJSON creates a message from JSON bytes.
func ReportExportMessageFromJSON(data []byte) (*ReportExportMessage, error) {
	var msg ReportExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
