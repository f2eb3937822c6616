package analysis

import (
	"math"

	"github.com/shekokarmahesh/contract-intel/model"
)

// SectionConfidence averages per-field confidences into one value per section,
// rounded to two decimal places. Sections without any recorded confidence are
// omitted entirely rather than reported as 0.
func SectionConfidence(data *model.ExtractedData) map[string]float64 {
	scores := make(map[string]float64)
	if data == nil {
		return scores
	}

	if len(data.Parties) > 0 {
		sum := 0
		for _, p := range data.Parties {
			sum += p.Confidence
		}
		scores["parties"] = round2(float64(sum) / float64(len(data.Parties)))
	}

	if fin := data.FinancialDetails; fin != nil {
		var confidences []int
		if fin.TotalValueConfidence > 0 {
			confidences = append(confidences, fin.TotalValueConfidence)
		}
		if fin.TaxInformation != nil && fin.TaxInformation.Confidence > 0 {
			confidences = append(confidences, fin.TaxInformation.Confidence)
		}
		if len(confidences) > 0 {
			scores["financial_details"] = round2(mean(confidences))
		}
	}

	if payment := data.PaymentStructure; payment != nil {
		var confidences []int
		for _, c := range []int{payment.TermsConfidence, payment.ScheduleConfidence, payment.MethodConfidence} {
			if c > 0 {
				confidences = append(confidences, c)
			}
		}
		if len(confidences) > 0 {
			scores["payment_structure"] = round2(mean(confidences))
		}
	}

	if sla := data.SLATerms; sla != nil {
		var confidences []int
		for _, c := range []int{sla.ResponseTimeConfidence, sla.UptimeConfidence, sla.PenaltiesConfidence} {
			if c > 0 {
				confidences = append(confidences, c)
			}
		}
		if len(confidences) > 0 {
			scores["sla_terms"] = round2(mean(confidences))
		}
	}

	if account := data.AccountInformation; account != nil && account.AccountConfidence > 0 {
		scores["account_information"] = float64(account.AccountConfidence)
	}

	return scores
}

func mean(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
