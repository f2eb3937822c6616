package analysis

import (
	"reflect"
	"testing"

	"github.com/shekokarmahesh/contract-intel/model"
)

func fullData() *model.ExtractedData {
	return &model.ExtractedData{
		Parties: []model.Party{
			{Name: "TechCorp Solutions Inc.", Role: model.RoleServiceProvider, LegalEntity: "Inc.", AuthorizedSignatory: "Jane Roe", Confidence: 90},
			{Name: "Global Retail Ltd.", Role: model.RoleClient, LegalEntity: "Ltd.", AuthorizedSignatory: "John Doe", Confidence: 95},
		},
		FinancialDetails: &model.FinancialDetails{
			TotalValue:           "$150,000",
			TotalValueConfidence: 90,
			Currency:             model.CurrencyUSD,
			LineItems: []model.LineItem{
				{Description: "Implementation", Quantity: 1, UnitPrice: "$50,000", Total: "$50,000"},
			},
			TaxInformation: &model.TaxInformation{Rate: "8.5%", Confidence: 90},
		},
		PaymentStructure: &model.PaymentStructure{
			Terms:              "Net 30",
			TermsConfidence:    95,
			Schedule:           "Monthly payments",
			ScheduleConfidence: 90,
			Method:             "Wire Transfer",
			MethodConfidence:   90,
		},
		SLATerms: &model.SLATerms{
			ResponseTime:           "4 hours",
			ResponseTimeConfidence: 95,
			UptimeGuarantee:        "99.9%",
			UptimeConfidence:       90,
			Penalties:              "5% credit",
			PenaltiesConfidence:    85,
		},
		ContactInformation: &model.ContactInformation{
			Emails:           []string{"billing@techcorp.com"},
			BillingContact:   "billing@techcorp.com",
			TechnicalContact: "support@techcorp.com",
		},
		AccountInformation: &model.AccountInformation{
			AccountNumber:     "ACC-12345",
			AccountConfidence: 95,
		},
	}
}

func TestCalculateScoreEmpty(t *testing.T) {
	if got := CalculateScore(&model.ExtractedData{}); got != 0 {
		t.Errorf("Expected score 0 for empty data, got %d", got)
	}
	if got := CalculateScore(nil); got != 0 {
		t.Errorf("Expected score 0 for nil data, got %d", got)
	}
}

func TestCalculateScoreFull(t *testing.T) {
	if got := CalculateScore(fullData()); got != 100 {
		t.Errorf("Expected score 100 for fully populated data, got %d", got)
	}
}

func TestCalculateScoreBounds(t *testing.T) {
	inputs := []*model.ExtractedData{
		nil,
		{},
		fullData(),
		{FinancialDetails: &model.FinancialDetails{TotalValue: "$1"}},
		{Parties: []model.Party{{Name: "Solo Corp"}}},
	}
	for i, data := range inputs {
		got := CalculateScore(data)
		if got < 0 || got > 100 {
			t.Errorf("Input %d: score %d out of [0,100]", i, got)
		}
	}
}

func TestCalculateScoreSinglePartyEarnsNothing(t *testing.T) {
	data := &model.ExtractedData{
		Parties: []model.Party{
			{Name: "Solo Corp", LegalEntity: "Corp.", AuthorizedSignatory: "A. Signer"},
		},
	}
	if got := CalculateScore(data); got != 0 {
		t.Errorf("Expected 0 with fewer than 2 parties, got %d", got)
	}
}

func TestCalculateScorePartialFinancial(t *testing.T) {
	data := &model.ExtractedData{
		FinancialDetails: &model.FinancialDetails{
			TotalValue: "$10,000",
			Currency:   model.CurrencyUSD,
		},
	}
	// 10 for total value, 5 for currency
	if got := CalculateScore(data); got != 15 {
		t.Errorf("Expected 15, got %d", got)
	}
}

func TestCalculateScoreIdempotent(t *testing.T) {
	data := fullData()
	first := CalculateScore(data)
	second := CalculateScore(data)
	if first != second {
		t.Errorf("Score changed between calls: %d then %d", first, second)
	}

	gapsFirst := IdentifyGaps(data)
	gapsSecond := IdentifyGaps(data)
	if !reflect.DeepEqual(gapsFirst, gapsSecond) {
		t.Error("Gap analysis changed between calls on identical input")
	}
}
