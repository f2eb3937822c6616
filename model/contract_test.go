package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestContractStatusConstants(t *testing.T) {
	statuses := []string{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
	expected := []string{"pending", "processing", "completed", "failed"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		if !ValidStatus(s) {
			t.Errorf("Expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestContractJSONHidesObjectKey(t *testing.T) {
	c := &Contract{
		ID:         "test-id",
		Filename:   "test.pdf",
		Tenant:     "tenant1",
		ObjectKey:  "tenant1/test-id/test.pdf",
		Status:     StatusPending,
		UploadedAt: time.Now(),
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(b), "tenant1/test-id/test.pdf") {
		t.Error("Object key must not appear in JSON output")
	}
}

func TestExtractedDataOmitsEmptySections(t *testing.T) {
	data := &ExtractedData{RawTextLength: 10}

	b, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(b)
	for _, key := range []string{"financial_details", "payment_structure", "sla_terms", "contact_information", "account_information"} {
		if strings.Contains(s, key) {
			t.Errorf("Expected empty section %q to be omitted, got %s", key, s)
		}
	}
}
