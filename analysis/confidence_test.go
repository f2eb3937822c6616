package analysis

import (
	"testing"

	"github.com/shekokarmahesh/contract-intel/model"
)

func TestSectionConfidenceEmpty(t *testing.T) {
	scores := SectionConfidence(&model.ExtractedData{})
	if len(scores) != 0 {
		t.Errorf("Expected empty confidence map, got %v", scores)
	}
}

func TestSectionConfidenceParties(t *testing.T) {
	data := &model.ExtractedData{
		Parties: []model.Party{
			{Name: "A Corp", Confidence: 90},
			{Name: "B Corp", Confidence: 95},
			{Name: "C Corp", Confidence: 90},
		},
	}
	scores := SectionConfidence(data)

	got, ok := scores["parties"]
	if !ok {
		t.Fatal("Expected parties confidence")
	}
	// (90+95+90)/3 = 91.666... rounds to 91.67
	if got != 91.67 {
		t.Errorf("Expected 91.67, got %v", got)
	}
}

func TestSectionConfidenceOmitsEmptySections(t *testing.T) {
	data := &model.ExtractedData{
		PaymentStructure: &model.PaymentStructure{Terms: "Net 30"}, // no confidences recorded
		SLATerms: &model.SLATerms{
			ResponseTime:           "4 hours",
			ResponseTimeConfidence: 95,
		},
	}
	scores := SectionConfidence(data)

	if _, ok := scores["payment_structure"]; ok {
		t.Error("Expected payment_structure to be omitted without any confidence values")
	}
	if got := scores["sla_terms"]; got != 95 {
		t.Errorf("Expected sla_terms 95, got %v", got)
	}
}

func TestSectionConfidenceAllSections(t *testing.T) {
	scores := SectionConfidence(fullData())

	for _, key := range []string{"parties", "financial_details", "payment_structure", "sla_terms", "account_information"} {
		if _, ok := scores[key]; !ok {
			t.Errorf("Expected section %q in confidence map", key)
		}
	}

	// financial: (90+90)/2, payment: (95+90+90)/3
	if scores["financial_details"] != 90 {
		t.Errorf("Expected financial_details 90, got %v", scores["financial_details"])
	}
	if scores["payment_structure"] != 91.67 {
		t.Errorf("Expected payment_structure 91.67, got %v", scores["payment_structure"])
	}
	if scores["account_information"] != 95 {
		t.Errorf("Expected account_information 95, got %v", scores["account_information"])
	}
}

func TestSectionConfidenceNilData(t *testing.T) {
	scores := SectionConfidence(nil)
	if scores == nil || len(scores) != 0 {
		t.Errorf("Expected initialized empty map, got %v", scores)
	}
}
