package model

// ExtractedData is the structured result of contract extraction. Each section is
// optional: a nil section means nothing was found for it, which is what scoring
// and gap analysis key off of.
type ExtractedData struct {
	Parties               []Party                `json:"parties,omitempty"`
	FinancialDetails      *FinancialDetails      `json:"financial_details,omitempty"`
	PaymentStructure      *PaymentStructure      `json:"payment_structure,omitempty"`
	SLATerms              *SLATerms              `json:"sla_terms,omitempty"`
	ContactInformation    *ContactInformation    `json:"contact_information,omitempty"`
	AccountInformation    *AccountInformation    `json:"account_information,omitempty"`
	RevenueClassification *RevenueClassification `json:"revenue_classification,omitempty"`
	RawTextLength         int                    `json:"raw_text_length"`
	ExtractionMetadata    ExtractionMetadata     `json:"extraction_metadata"`
}

// Party is one contract party with its contextual role classification
type Party struct {
	Name                string `json:"name"`
	Role                string `json:"role"` // Client, Service Provider, Partner, Party
	LegalEntity         string `json:"legal_entity,omitempty"`
	AuthorizedSignatory string `json:"authorized_signatory,omitempty"`
	Confidence          int    `json:"confidence"`
}

// Party role constants
const (
	RoleClient          = "Client"
	RoleServiceProvider = "Service Provider"
	RolePartner         = "Partner"
	RoleParty           = "Party"
)

type FinancialDetails struct {
	TotalValue           string          `json:"total_value,omitempty"`
	TotalValueConfidence int             `json:"total_value_confidence,omitempty"`
	Currency             string          `json:"currency,omitempty"` // USD, EUR, GBP
	LineItems            []LineItem      `json:"line_items,omitempty"`
	TaxInformation       *TaxInformation `json:"tax_information,omitempty"`
}

type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type TaxInformation struct {
	Rate       string `json:"rate"`
	Confidence int    `json:"confidence"`
}

type PaymentStructure struct {
	Terms              string `json:"terms,omitempty"`
	TermsConfidence    int    `json:"terms_confidence,omitempty"`
	Schedule           string `json:"schedule,omitempty"`
	ScheduleConfidence int    `json:"schedule_confidence,omitempty"`
	Method             string `json:"method,omitempty"`
	MethodConfidence   int    `json:"method_confidence,omitempty"`
}

type SLATerms struct {
	ResponseTime           string `json:"response_time,omitempty"`
	ResponseTimeConfidence int    `json:"response_time_confidence,omitempty"`
	UptimeGuarantee        string `json:"uptime_guarantee,omitempty"`
	UptimeConfidence       int    `json:"uptime_confidence,omitempty"`
	Penalties              string `json:"penalties,omitempty"`
	PenaltiesConfidence    int    `json:"penalties_confidence,omitempty"`
}

// ContactInformation holds contacts found in the text. Emails are de-duplicated,
// phones keep their order of appearance. BillingContact and TechnicalContact are
// not produced by pattern extraction but participate in scoring when present.
type ContactInformation struct {
	Emails           []string `json:"emails,omitempty"`
	Phones           []string `json:"phones,omitempty"`
	BillingContact   string   `json:"billing_contact,omitempty"`
	TechnicalContact string   `json:"technical_contact,omitempty"`
}

type AccountInformation struct {
	AccountNumber     string `json:"account_number,omitempty"`
	AccountConfidence int    `json:"account_confidence,omitempty"`
	BillingAddress    string `json:"billing_address,omitempty"`
}

type RevenueClassification struct {
	Type         string `json:"type"` // Recurring, One-time
	BillingCycle string `json:"billing_cycle,omitempty"`
	RenewalTerms string `json:"renewal_terms,omitempty"`
}

// Revenue classification constants
const (
	RevenueRecurring = "Recurring"
	RevenueOneTime   = "One-time"

	CycleMonthly   = "Monthly"
	CycleQuarterly = "Quarterly"
	CycleAnnual    = "Annual"
)

// Currency constants
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

type ExtractionMetadata struct {
	TotalPages       int    `json:"total_pages"`
	ExtractionMethod string `json:"extraction_method"`
	TextLength       int    `json:"text_length"`
}
