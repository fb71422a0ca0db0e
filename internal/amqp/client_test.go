package amqp

import (
	"testing"
	"time"
)

func TestNewReportExportMessage(t *testing.T) {
	msg := NewReportExportMessage("exp-1", "user-1", "2025-01-01", "2025-01-31", "USD")

	if msg.ExportID != "exp-1" {
		t.Errorf("ExportID = %v, want exp-1", msg.ExportID)
	}
	if msg.UserID != "user-1" {
		t.Errorf("UserID = %v, want user-1", msg.UserID)
	}
	if msg.StartDate != "2025-01-01" || msg.EndDate != "2025-01-31" {
		t.Errorf("date range = %v..%v, want 2025-01-01..2025-01-31", msg.StartDate, msg.EndDate)
	}
	if msg.TargetCurrency != "USD" {
		t.Errorf("TargetCurrency = %v, want USD", msg.TargetCurrency)
	}
	if msg.RequestedAt.IsZero() {
		t.Error("RequestedAt should not be zero")
	}
	if time.Since(msg.RequestedAt) > time.Second {
		t.Error("RequestedAt should be recent")
	}
}

func TestReportExportMessage_JSON(t *testing.T) {
	requestedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msg := &ReportExportMessage{
		ExportID:       "exp-42",
		UserID:         "user-7",
		StartDate:      "2025-05-01",
		EndDate:        "2025-05-31",
		TargetCurrency: "EUR",
		RequestedAt:    requestedAt,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReportExportMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ReportExportMessageFromJSON() error = %v", err)
	}

	if parsed.ExportID != msg.ExportID || parsed.UserID != msg.UserID {
		t.Errorf("parsed identity = %v/%v, want %v/%v", parsed.ExportID, parsed.UserID, msg.ExportID, msg.UserID)
	}
	if parsed.TargetCurrency != msg.TargetCurrency {
		t.Errorf("parsed currency = %v, want %v", parsed.TargetCurrency, msg.TargetCurrency)
	}
	if !parsed.RequestedAt.Equal(msg.RequestedAt) {
		t.Errorf("parsed RequestedAt = %v, want %v", parsed.RequestedAt, msg.RequestedAt)
	}
}

func TestReportExportMessage_OptionalFieldsOmitted(t *testing.T) {
	msg := NewReportExportMessage("exp-1", "user-1", "", "", "")
	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := ReportExportMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("ReportExportMessageFromJSON() error = %v", err)
	}
	if parsed.StartDate != "" || parsed.EndDate != "" || parsed.TargetCurrency != "" {
		t.Errorf("optional fields should round-trip empty, got %+v", parsed)
	}
}

func TestReportExportMessage_InvalidJSON(t *testing.T) {
	if _, err := ReportExportMessageFromJSON([]byte(`{"exportId": 42}`)); err == nil {
		t.Error("ReportExportMessageFromJSON() should fail with invalid JSON")
	}
}
