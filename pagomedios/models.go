package pagomedios

import "encoding/json"

// CompanyType distinguishes natural persons from companies on the
// payment request.
type CompanyType string

const (
	CompanyTypeIndividual CompanyType = "Individual"
	CompanyTypeCompany    CompanyType = "Company"
)

// Client-facing document-type codes. These stay stable across provider
// API versions; the formatter translates them to the provider's codes.
const (
	DocumentTypeCedula    = "01"
	DocumentTypeRUC       = "02"
	DocumentTypeForeignID = "03"
	DocumentTypePassport  = "06"
)

// Data is the caller-supplied intent to create a payment link.
//
// The amount split is enforced by the provider, not locally:
// Amount must equal AmountWithTax + AmountWithoutTax + Tax, and Tax
// must be one of the rates the provider currently accepts.
type Data struct {
	CompanyType      CompanyType
	Document         string
	DocumentType     string
	FullName         string
	Address          string
	Mobile           string
	Email            string
	Description      string
	Amount           float64
	AmountWithTax    float64
	AmountWithoutTax float64
	Tax              float64
	NotifyURL        string
	GenerateInvoice  int
	CustomValue      string
	Settings         []string
	// Reference is the merchant-side correlation id. A UUID is
	// generated when left blank.
	Reference   string
	Integration bool
}

// ProviderResponse is the provider's envelope: an HTTP-like status and
// a data payload whose shape varies per operation (object or array).
type ProviderResponse struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// PaymentStatus is the provider's payment state machine.
type PaymentStatus int

const (
	StatusPending PaymentStatus = iota
	StatusAuthorized
	StatusRejected
	StatusReversed
)

// Description returns the display name for the status. Codes outside
// the known set report "Unknown" rather than an empty string.
func (s PaymentStatus) Description() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusAuthorized:
		return "Authorized"
	case StatusRejected:
		return "Rejected"
	case StatusReversed:
		return "Reversed"
	default:
		return "Unknown"
	}
}

// StatusSchema maps provider status codes to display names, for
// callers that render lists without re-deriving descriptions.
type StatusSchema map[PaymentStatus]string

// DefaultStatusSchema returns a fresh copy of the status table.
func DefaultStatusSchema() StatusSchema {
	return StatusSchema{
		StatusPending:    StatusPending.Description(),
		StatusAuthorized: StatusAuthorized.Description(),
		StatusRejected:   StatusRejected.Description(),
		StatusReversed:   StatusReversed.Description(),
	}
}

// PaymentLink is the payload returned when a payment request is created.
type PaymentLink struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// PaymentRequestResult is the outcome of CreatePaymentRequest.
type PaymentRequestResult struct {
	Success bool
	Status  int
	Data    PaymentLink
}

// PaymentRecord is the normalized view of one provider payment record.
type PaymentRecord struct {
	ID                string
	Status            PaymentStatus
	StatusDescription string
	AuthorizationCode string
	CardNumber        string
	CardHolder        string
	TransactionDate   string
	Reference         string
}

// Query filters payment lookups. A set ID narrows the result to a
// single record.
type Query struct {
	ID string
}

// PaymentLookup is the tagged result of GetPayment: exactly one of
// Single or Many is populated, and Schema is always set.
type PaymentLookup struct {
	Single *PaymentRecord
	Many   []PaymentRecord
	Schema StatusSchema
}

// paymentRecordWire is the provider's record shape inside Data arrays.
type paymentRecordWire struct {
	ID                string  `json:"id"`
	Status            int     `json:"status"`
	AuthorizationCode string  `json:"authorization_code"`
	CardNumber        string  `json:"card_number"`
	CardHolder        string  `json:"card_holder"`
	TransactionDate   string  `json:"transaction_date"`
	Reference         string  `json:"reference"`
	Amount            float64 `json:"amount"`
}

func (w paymentRecordWire) normalize() PaymentRecord {
	status := PaymentStatus(w.Status)
	return PaymentRecord{
		ID:                w.ID,
		Status:            status,
		StatusDescription: status.Description(),
		AuthorizationCode: w.AuthorizationCode,
		CardNumber:        w.CardNumber,
		CardHolder:        w.CardHolder,
		TransactionDate:   w.TransactionDate,
		Reference:         w.Reference,
	}
}
