package analysis

import (
	"testing"

	"github.com/shekokarmahesh/contract-intel/model"
)

func TestIdentifyGapsFullData(t *testing.T) {
	gaps := IdentifyGaps(fullData())
	if len(gaps) != 0 {
		t.Errorf("Expected no gaps for fully populated data, got %v", gaps)
	}
}

func TestIdentifyGapsEmptyData(t *testing.T) {
	gaps := IdentifyGaps(&model.ExtractedData{})

	wantFields := []string{
		"Financial Details",
		"Contract Parties",
		"Payment Terms",
		"Service Level Agreements",
		"Contact Information",
	}
	if len(gaps) != len(wantFields) {
		t.Fatalf("Expected %d gaps, got %d: %v", len(wantFields), len(gaps), gaps)
	}
	for i, want := range wantFields {
		if gaps[i].Field != want {
			t.Errorf("Gap %d: expected field %q, got %q", i, want, gaps[i].Field)
		}
	}

	if gaps[0].Importance != model.ImportanceHigh || gaps[0].Status != model.GapMissing {
		t.Errorf("Unexpected first gap classification: %+v", gaps[0])
	}
}

func TestIdentifyGapsPartialFinancial(t *testing.T) {
	data := fullData()
	data.FinancialDetails.TotalValue = ""
	data.FinancialDetails.Currency = ""

	gaps := IdentifyGaps(data)
	if len(gaps) != 2 {
		t.Fatalf("Expected 2 gaps, got %v", gaps)
	}
	if gaps[0].Field != "Contract Value" || gaps[0].Description != "Total contract value not specified" {
		t.Errorf("Unexpected first gap: %+v", gaps[0])
	}
	if gaps[1].Field != "Currency" || gaps[1].Importance != model.ImportanceMedium {
		t.Errorf("Unexpected second gap: %+v", gaps[1])
	}
}

func TestIdentifyGapsIncompleteParties(t *testing.T) {
	data := fullData()
	data.Parties = data.Parties[:1]

	gaps := IdentifyGaps(data)
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %v", gaps)
	}
	if gaps[0].Field != "Contract Parties" || gaps[0].Status != model.GapIncomplete {
		t.Errorf("Unexpected gap: %+v", gaps[0])
	}
	if gaps[0].Description != "Less than 2 parties identified" {
		t.Errorf("Unexpected description: %q", gaps[0].Description)
	}
}

func TestIdentifyGapsMissingPaymentTerms(t *testing.T) {
	data := fullData()
	data.PaymentStructure.Terms = ""

	gaps := IdentifyGaps(data)
	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %v", gaps)
	}
	if gaps[0].Field != "Payment Schedule" || gaps[0].Description != "Payment schedule not specified" {
		t.Errorf("Unexpected gap: %+v", gaps[0])
	}
}

func TestIdentifyGapsNilData(t *testing.T) {
	gaps := IdentifyGaps(nil)
	if gaps == nil {
		t.Fatal("Expected an initialized slice, got nil")
	}
	if len(gaps) != 5 {
		t.Errorf("Expected 5 gaps for nil data, got %d", len(gaps))
	}
}
