// Package analysis derives the completeness score, the gap list and the
// per-section confidence summary from extracted contract data. Everything in
// here is a pure function of its input.
package analysis

import (
	"github.com/shekokarmahesh/contract-intel/model"
)

// Category weights for the completeness score. Each category's raw sum is
// capped at its weight before the grand total is capped at 100.
const (
	weightFinancialCompleteness = 30
	weightPartyIdentification   = 25
	weightPaymentTermsClarity   = 20
	weightSLADefinition         = 15
	weightContactInformation    = 10
)

// CalculateScore computes the 0-100 completeness score for extracted data.
// Scoring is strictly additive: an absent category contributes 0, never a
// penalty.
func CalculateScore(data *model.ExtractedData) int {
	if data == nil {
		return 0
	}
	score := 0

	// Financial completeness
	if fin := data.FinancialDetails; fin != nil {
		s := 0
		if fin.TotalValue != "" {
			s += 10
		}
		if len(fin.LineItems) > 0 {
			s += 10
		}
		if fin.Currency != "" {
			s += 5
		}
		if fin.TaxInformation != nil {
			s += 5
		}
		score += capAt(s, weightFinancialCompleteness)
	}

	// Party identification: fewer than two parties earns nothing at all.
	if len(data.Parties) >= 2 {
		s := 15
		if anyParty(data.Parties, func(p model.Party) bool { return p.LegalEntity != "" }) {
			s += 5
		}
		if anyParty(data.Parties, func(p model.Party) bool { return p.AuthorizedSignatory != "" }) {
			s += 5
		}
		score += capAt(s, weightPartyIdentification)
	}

	// Payment terms clarity
	if payment := data.PaymentStructure; payment != nil {
		s := 0
		if payment.Terms != "" {
			s += 8
		}
		if payment.Schedule != "" {
			s += 6
		}
		if payment.Method != "" {
			s += 6
		}
		score += capAt(s, weightPaymentTermsClarity)
	}

	// SLA definition
	if sla := data.SLATerms; sla != nil {
		s := 0
		if sla.ResponseTime != "" {
			s += 5
		}
		if sla.UptimeGuarantee != "" {
			s += 5
		}
		if sla.Penalties != "" {
			s += 5
		}
		score += capAt(s, weightSLADefinition)
	}

	// Contact information
	if contact := data.ContactInformation; contact != nil {
		s := 0
		if contact.BillingContact != "" {
			s += 5
		}
		if contact.TechnicalContact != "" {
			s += 5
		}
		score += capAt(s, weightContactInformation)
	}

	return capAt(score, 100)
}

func capAt(v, max int) int {
	if v > max {
		return max
	}
	return v
}

func anyParty(parties []model.Party, pred func(model.Party) bool) bool {
	for _, p := range parties {
		if pred(p) {
			return true
		}
	}
	return false
}
