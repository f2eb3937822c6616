package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shekokarmahesh/contract-intel/model"
)

// ErrInsufficientContent is returned when the contract text is too short to be
// worth extracting from.
var ErrInsufficientContent = errors.New("contract contains insufficient text content")

const (
	minTextLength = 100
	maxParties    = 4
	maxLineItems  = 10

	extractionMethod = "pdftext + regex"
)

// Context keyword buckets for party role classification, checked in priority
// order: client-type outranks vendor-type outranks partner-type.
var (
	clientWords  = []string{"client", "customer", "buyer", "purchaser"}
	vendorWords  = []string{"vendor", "supplier", "contractor", "service provider"}
	partnerWords = []string{"partner", "joint venture"}
)

// Extractor applies ordered pattern rule sets to raw contract text. It holds
// only immutable compiled patterns and is safe for concurrent use.
type Extractor struct {
	parties RuleSet

	totalValue RuleSet
	tax        RuleSet
	currencies []currencyRule

	paymentTerms RuleSet
	schedule     RuleSet
	method       RuleSet

	responseTime RuleSet
	uptime       RuleSet
	penalties    RuleSet

	account RuleSet

	lineItemRe  *regexp.Regexp
	emailRe     *regexp.Regexp
	phoneRe     *regexp.Regexp
	addressRe   *regexp.Regexp
	recurringRe *regexp.Regexp
	monthlyRe   *regexp.Regexp
	quarterlyRe *regexp.Regexp
	annualRe    *regexp.Regexp
	renewalRe   *regexp.Regexp
}

// New builds an Extractor with the predefined pattern tables.
func New() *Extractor {
	return &Extractor{
		parties: ruleSet("party", CollectAll,
			`(?:Party|Contractor|Vendor|Client|Customer)[\s:]+([A-Z][^,\n.]+(?:Inc\.|LLC|Ltd\.|Corp\.)?)`,
			`([A-Z][A-Za-z\s]+(?:Inc\.|LLC|Ltd\.|Corp\.|Company))`,
			`between\s+([A-Z][^,\n]+?)(?:\s+and|\s*,)`,
		),

		totalValue: ruleSet("total_value", FirstMatch,
			`Total\s*(?:Contract\s*)?(?:Value|Amount)[\s:]*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`,
			`Contract\s*Value[\s:]*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`,
			`Total[\s:]*\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`,
			`Amount\s*Due[\s:]*\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`,
		),
		tax: ruleSet("tax", FirstMatch,
			`Tax\s*Rate[\s:]*(\d+(?:\.\d+)?%)`,
			`VAT[\s:]*(\d+(?:\.\d+)?%)`,
			`Sales\s*Tax[\s:]*(\d+(?:\.\d+)?%)`,
		),
		// Fixed priority: USD outranks EUR outranks GBP regardless of where the
		// tokens appear in the text.
		currencies: []currencyRule{
			{model.CurrencyUSD, regexp.MustCompile(`(?i)\$|USD|US Dollar`)},
			{model.CurrencyEUR, regexp.MustCompile(`(?i)€|EUR|Euro`)},
			{model.CurrencyGBP, regexp.MustCompile(`(?i)£|GBP|British Pound`)},
		},

		paymentTerms: ruleSet("payment_terms", FirstMatch,
			`Net\s*(\d+)\s*days?`,
			`(\d+)\s*days?\s*net`,
			`Payment\s*due\s*in\s*(\d+)\s*days?`,
			`Terms?\s*:\s*Net\s*(\d+)`,
		),
		schedule: ruleSet("schedule", FirstMatch,
			`(?:Payment|Billing)\s*Schedule[\s:]*([^\n.]+)`,
			`(?:Monthly|Quarterly|Annual|Weekly)\s*payments?`,
		),
		method: ruleSet("payment_method", FirstMatch,
			`Payment\s*Method[\s:]*([^\n.]+)`,
			`(?:Wire\s*Transfer|ACH|Check|Credit\s*Card)`,
		),

		responseTime: ruleSet("response_time", FirstMatch,
			`Response\s*Time[\s:]*(\d+\s*(?:hours?|minutes?|days?))`,
			`(\d+\s*(?:hour|minute|day))\s*response`,
		),
		uptime: ruleSet("uptime", FirstMatch,
			`(?:Uptime|Availability)(?:\s*Guarantee)?[\s:]*(\d+(?:\.\d+)?%)`,
			`(\d+(?:\.\d+)?%)\s*(?:uptime|availability)`,
		),
		penalties: ruleSet("penalties", FirstMatch,
			`Penalty[\s:]*([^\n.]+)`,
			`(?:reduction|penalty).*?(\d+(?:\.\d+)?%)`,
		),

		account: ruleSet("account_number", FirstMatch,
			`Account\s*(?:Number|#)[\s:]*([A-Z0-9-]+)`,
			`Customer\s*ID[\s:]*([A-Z0-9-]+)`,
		),

		lineItemRe:  regexp.MustCompile(`(?m)([A-Z][^$\n]*?)\s+(\d+)\s+\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)\s+\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
		emailRe:     regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
		phoneRe:     regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`),
		addressRe:   regexp.MustCompile(`(?im)(?:Billing\s*Address|Address)[\s:]*([^\n]+(?:\n[^\n]+){0,3})`),
		recurringRe: regexp.MustCompile(`(?i)recurring|subscription|monthly|annual|quarterly`),
		monthlyRe:   regexp.MustCompile(`(?i)monthly`),
		quarterlyRe: regexp.MustCompile(`(?i)quarterly`),
		annualRe:    regexp.MustCompile(`(?i)annually|annual`),
		renewalRe:   regexp.MustCompile(`(?i)(?:renewal|auto-renew|automatically\s*renew)[^\n.]*`),
	}
}

// Extract parses raw contract text into structured data. It fails only when
// the trimmed text is shorter than 100 characters; otherwise every section is
// best-effort and may come back empty.
func (e *Extractor) Extract(text string) (*model.ExtractedData, error) {
	if len(strings.TrimSpace(text)) < minTextLength {
		return nil, ErrInsufficientContent
	}

	return &model.ExtractedData{
		Parties:               e.extractParties(text),
		FinancialDetails:      e.extractFinancialDetails(text),
		PaymentStructure:      e.extractPaymentStructure(text),
		SLATerms:              e.extractSLATerms(text),
		ContactInformation:    e.extractContactInformation(text),
		AccountInformation:    e.extractAccountInformation(text),
		RevenueClassification: e.extractRevenueClassification(text),
		RawTextLength:         len(text),
		ExtractionMetadata: model.ExtractionMetadata{
			ExtractionMethod: extractionMethod,
			TextLength:       len(text),
		},
	}, nil
}

// extractParties collects party candidates from every pattern, de-duplicates
// them by trimmed name and caps the result at 4 entries after full collection.
func (e *Extractor) extractParties(text string) []model.Party {
	var parties []model.Party
	seen := make(map[string]bool)

	for _, re := range e.parties.Patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if len(name) <= 3 || seen[name] {
				continue
			}
			seen[name] = true

			parties = append(parties, model.Party{
				Name:        name,
				Role:        e.partyRole(text, name),
				LegalEntity: e.legalEntity(text, name),
				Confidence:  partyConfidence(text, name),
			})
		}
	}

	if len(parties) > maxParties {
		parties = parties[:maxParties]
	}
	return parties
}

// partyRole classifies a party from the keywords found in a 100-character
// window around its name.
func (e *Extractor) partyRole(text, name string) string {
	window, ok := contextWindow(text, name, 100)
	if !ok {
		return model.RoleParty
	}

	if containsAny(window, clientWords) {
		return model.RoleClient
	}
	if containsAny(window, vendorWords) {
		return model.RoleServiceProvider
	}
	if containsAny(window, partnerWords) {
		return model.RolePartner
	}
	return model.RoleParty
}

// legalEntity looks for an entity suffix after the party name within the same
// clause, i.e. with no comma, newline or period in between.
func (e *Extractor) legalEntity(text, name string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(name) + `[^,\n.]*?(Inc\.|LLC|Ltd\.|Corp\.|Company|Corporation)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

func partyConfidence(text, name string) int {
	re, err := regexp.Compile(`(?im)` + regexp.QuoteMeta(name))
	if err != nil {
		return 0
	}
	return Score(text, re, "party").Confidence
}

func (e *Extractor) extractFinancialDetails(text string) *model.FinancialDetails {
	fin := &model.FinancialDetails{}

	if res, ok := firstMatch(text, e.totalValue); ok {
		fin.TotalValue = "$" + res.First()
		fin.TotalValueConfidence = res.Confidence
	}

	fin.Currency = e.detectCurrency(text)
	fin.LineItems = e.extractLineItems(text)

	if res, ok := firstMatch(text, e.tax); ok {
		fin.TaxInformation = &model.TaxInformation{
			Rate:       res.First(),
			Confidence: res.Confidence,
		}
	}

	if fin.TotalValue == "" && fin.Currency == "" && len(fin.LineItems) == 0 && fin.TaxInformation == nil {
		return nil
	}
	return fin
}

func (e *Extractor) detectCurrency(text string) string {
	for _, c := range e.currencies {
		if c.re.MatchString(text) {
			return c.code
		}
	}
	return ""
}

func (e *Extractor) extractLineItems(text string) []model.LineItem {
	var items []model.LineItem
	for _, m := range e.lineItemRe.FindAllStringSubmatch(text, -1) {
		quantity, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		items = append(items, model.LineItem{
			Description: strings.TrimSpace(m[1]),
			Quantity:    quantity,
			UnitPrice:   "$" + m[3],
			Total:       "$" + m[4],
		})
	}
	if len(items) > maxLineItems {
		items = items[:maxLineItems]
	}
	return items
}

func (e *Extractor) extractPaymentStructure(text string) *model.PaymentStructure {
	payment := &model.PaymentStructure{}

	if res, ok := firstMatch(text, e.paymentTerms); ok {
		payment.Terms = "Net " + res.First()
		payment.TermsConfidence = res.Confidence
	}
	if res, ok := firstMatch(text, e.schedule); ok {
		payment.Schedule = res.First()
		payment.ScheduleConfidence = res.Confidence
	}
	if res, ok := firstMatch(text, e.method); ok {
		payment.Method = res.First()
		payment.MethodConfidence = res.Confidence
	}

	if payment.Terms == "" && payment.Schedule == "" && payment.Method == "" {
		return nil
	}
	return payment
}

func (e *Extractor) extractSLATerms(text string) *model.SLATerms {
	sla := &model.SLATerms{}

	if res, ok := firstMatch(text, e.responseTime); ok {
		sla.ResponseTime = res.First()
		sla.ResponseTimeConfidence = res.Confidence
	}
	if res, ok := firstMatch(text, e.uptime); ok {
		sla.UptimeGuarantee = res.First()
		sla.UptimeConfidence = res.Confidence
	}
	if res, ok := firstMatch(text, e.penalties); ok {
		sla.Penalties = res.First()
		sla.PenaltiesConfidence = res.Confidence
	}

	if sla.ResponseTime == "" && sla.UptimeGuarantee == "" && sla.Penalties == "" {
		return nil
	}
	return sla
}

func (e *Extractor) extractContactInformation(text string) *model.ContactInformation {
	contact := &model.ContactInformation{}

	seen := make(map[string]bool)
	for _, email := range e.emailRe.FindAllString(text, -1) {
		if seen[email] {
			continue
		}
		seen[email] = true
		contact.Emails = append(contact.Emails, email)
	}

	for _, m := range e.phoneRe.FindAllStringSubmatch(text, -1) {
		contact.Phones = append(contact.Phones, "("+m[1]+") "+m[2]+"-"+m[3])
	}

	if len(contact.Emails) == 0 && len(contact.Phones) == 0 {
		return nil
	}
	return contact
}

func (e *Extractor) extractAccountInformation(text string) *model.AccountInformation {
	account := &model.AccountInformation{}

	if res, ok := firstMatch(text, e.account); ok {
		account.AccountNumber = res.First()
		account.AccountConfidence = res.Confidence
	}

	if m := e.addressRe.FindStringSubmatch(text); m != nil {
		account.BillingAddress = strings.TrimSpace(m[1])
	}

	if account.AccountNumber == "" && account.BillingAddress == "" {
		return nil
	}
	return account
}

// extractRevenueClassification always produces a classification: a contract
// without any recurring signal is one-time revenue.
func (e *Extractor) extractRevenueClassification(text string) *model.RevenueClassification {
	revenue := &model.RevenueClassification{Type: model.RevenueOneTime}

	if e.recurringRe.MatchString(text) {
		revenue.Type = model.RevenueRecurring
		switch {
		case e.monthlyRe.MatchString(text):
			revenue.BillingCycle = model.CycleMonthly
		case e.quarterlyRe.MatchString(text):
			revenue.BillingCycle = model.CycleQuarterly
		case e.annualRe.MatchString(text):
			revenue.BillingCycle = model.CycleAnnual
		}
	}

	revenue.RenewalTerms = e.renewalRe.FindString(text)
	return revenue
}

// contextWindow returns up to radius characters around the first occurrence of
// name in text, lower-cased, for keyword checks.
func contextWindow(text, name string, radius int) (string, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, strings.ToLower(name))
	if idx < 0 {
		return "", false
	}
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(name) + radius
	if end > len(lower) {
		end = len(lower)
	}
	return lower[start:end], true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
