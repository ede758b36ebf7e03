package pagomedios

import "github.com/google/uuid"

// providerDocumentTypes translates the stable client-facing codes to
// the provider's current code space. The provider renumbered these
// across API versions; the client enum never moved, so both spaces and
// this exact table must be preserved.
var providerDocumentTypes = map[string]string{
	DocumentTypeCedula:    "05",
	DocumentTypeRUC:       "04",
	DocumentTypeForeignID: "08",
	DocumentTypePassport:  "06",
}

// Unrecognized codes fall back to the provider's passport code.
const providerDocumentTypePassport = "06"

type wireThird struct {
	Document     string `json:"document"`
	DocumentType string `json:"document_type"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phones       string `json:"phones"`
	Address      string `json:"address"`
	Type         string `json:"type"`
}

type wireRequest struct {
	Third            wireThird `json:"third"`
	Amount           float64   `json:"amount"`
	AmountWithTax    float64   `json:"amount_with_tax"`
	AmountWithoutTax float64   `json:"amount_without_tax"`
	TaxValue         float64   `json:"tax_value"`
	GenerateInvoice  int       `json:"generate_invoice"`
	Settings         []string  `json:"settings"`
	NotifyURL        string    `json:"notify_url,omitempty"`
	CustomValue      string    `json:"custom_value,omitempty"`
	Reference        string    `json:"reference"`
	Integration      bool      `json:"integration"`
}

// formatRequest maps caller data onto the provider's wire shape. It is
// total: malformed field values pass through untouched, the provider
// is authoritative for validation.
func formatRequest(data Data) wireRequest {
	docType, ok := providerDocumentTypes[data.DocumentType]
	if !ok {
		docType = providerDocumentTypePassport
	}

	settings := data.Settings
	if settings == nil {
		settings = []string{}
	}

	reference := data.Reference
	if reference == "" {
		reference = uuid.NewString()
	}

	return wireRequest{
		Third: wireThird{
			Document:     data.Document,
			DocumentType: docType,
			Name:         data.FullName,
			Email:        data.Email,
			Phones:       data.Mobile,
			Address:      data.Address,
			Type:         string(data.CompanyType),
		},
		Amount:           data.Amount,
		AmountWithTax:    data.AmountWithTax,
		AmountWithoutTax: data.AmountWithoutTax,
		TaxValue:         data.Tax,
		GenerateInvoice:  data.GenerateInvoice,
		Settings:         settings,
		NotifyURL:        data.NotifyURL,
		CustomValue:      data.CustomValue,
		Reference:        reference,
		// The provider API has always coerced this flag with a truthy
		// default, so an explicit false still goes out as true.
		Integration: true,
	}
}
