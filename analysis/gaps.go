package analysis

import (
	"github.com/shekokarmahesh/contract-intel/model"
)

// IdentifyGaps inspects extracted data for missing or incomplete critical
// fields. Rules run in a fixed order, which also fixes the output order.
func IdentifyGaps(data *model.ExtractedData) []model.Gap {
	gaps := []model.Gap{}
	if data == nil {
		data = &model.ExtractedData{}
	}

	if data.FinancialDetails == nil {
		gaps = append(gaps, model.Gap{
			Field:       "Financial Details",
			Importance:  model.ImportanceHigh,
			Status:      model.GapMissing,
			Description: "No financial information found",
		})
	} else {
		if data.FinancialDetails.TotalValue == "" {
			gaps = append(gaps, model.Gap{
				Field:       "Contract Value",
				Importance:  model.ImportanceHigh,
				Status:      model.GapMissing,
				Description: "Total contract value not specified",
			})
		}
		if data.FinancialDetails.Currency == "" {
			gaps = append(gaps, model.Gap{
				Field:       "Currency",
				Importance:  model.ImportanceMedium,
				Status:      model.GapMissing,
				Description: "Currency not specified",
			})
		}
	}

	if len(data.Parties) < 2 {
		gaps = append(gaps, model.Gap{
			Field:       "Contract Parties",
			Importance:  model.ImportanceHigh,
			Status:      model.GapIncomplete,
			Description: "Less than 2 parties identified",
		})
	}

	if data.PaymentStructure == nil {
		gaps = append(gaps, model.Gap{
			Field:       "Payment Terms",
			Importance:  model.ImportanceHigh,
			Status:      model.GapMissing,
			Description: "Payment terms not found",
		})
	} else if data.PaymentStructure.Terms == "" {
		gaps = append(gaps, model.Gap{
			Field:       "Payment Schedule",
			Importance:  model.ImportanceHigh,
			Status:      model.GapMissing,
			Description: "Payment schedule not specified",
		})
	}

	if data.SLATerms == nil {
		gaps = append(gaps, model.Gap{
			Field:       "Service Level Agreements",
			Importance:  model.ImportanceMedium,
			Status:      model.GapMissing,
			Description: "SLA terms not found",
		})
	}

	if data.ContactInformation == nil {
		gaps = append(gaps, model.Gap{
			Field:       "Contact Information",
			Importance:  model.ImportanceMedium,
			Status:      model.GapMissing,
			Description: "Contact details not found",
		})
	}

	return gaps
}
