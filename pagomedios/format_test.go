package pagomedios

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func makeData() Data {
	return Data{
		CompanyType:      CompanyTypeIndividual,
		Document:         "1726834771",
		DocumentType:     DocumentTypeCedula,
		FullName:         "Nombre Prueba",
		Address:          "Quito - Ecuador",
		Mobile:           "+59399999999",
		Email:            "ejemplo@ejm.com",
		Description:      "Solicitud de prueba",
		Amount:           1.12,
		AmountWithTax:    1,
		AmountWithoutTax: 0,
		Tax:              0.12,
		Reference:        "ref-123",
		Integration:      true,
	}
}

func TestFormatRequestDocumentTypeMapping(t *testing.T) {
	expected := map[string]string{
		DocumentTypeCedula:    "05",
		DocumentTypeRUC:       "04",
		DocumentTypeForeignID: "08",
		DocumentTypePassport:  "06",
	}

	for clientCode, providerCode := range expected {
		data := makeData()
		data.DocumentType = clientCode
		wire := formatRequest(data)
		require.Equal(t, providerCode, wire.Third.DocumentType, "client code %s", clientCode)
	}
}

func TestFormatRequestUnknownDocumentTypeFallsBackToPassport(t *testing.T) {
	for _, code := range []string{"", "00", "99", "xx"} {
		data := makeData()
		data.DocumentType = code
		wire := formatRequest(data)
		require.Equal(t, "06", wire.Third.DocumentType, "client code %q", code)
	}
}

func TestFormatRequestThirdMapping(t *testing.T) {
	data := makeData()
	wire := formatRequest(data)

	require.Equal(t, data.Document, wire.Third.Document)
	require.Equal(t, data.FullName, wire.Third.Name)
	require.Equal(t, data.Email, wire.Third.Email)
	require.Equal(t, data.Mobile, wire.Third.Phones)
	require.Equal(t, data.Address, wire.Third.Address)
	require.Equal(t, string(data.CompanyType), wire.Third.Type)
	require.Equal(t, data.Amount, wire.Amount)
	require.Equal(t, data.AmountWithTax, wire.AmountWithTax)
	require.Equal(t, data.AmountWithoutTax, wire.AmountWithoutTax)
	require.Equal(t, data.Tax, wire.TaxValue)
	require.Equal(t, "ref-123", wire.Reference)
}

func TestFormatRequestDefaults(t *testing.T) {
	data := makeData()
	data.Settings = nil
	data.Reference = ""
	data.NotifyURL = ""
	data.GenerateInvoice = 0

	wire := formatRequest(data)

	require.NotNil(t, wire.Settings)
	require.Empty(t, wire.Settings)
	require.Zero(t, wire.GenerateInvoice)
	require.Empty(t, wire.NotifyURL)

	_, err := uuid.Parse(wire.Reference)
	require.NoError(t, err, "blank reference should be replaced with a generated UUID")
}

func TestFormatRequestIntegrationAlwaysTrue(t *testing.T) {
	// Historical provider behavior: the flag is coerced with a truthy
	// default, so even an explicit false is sent as true.
	data := makeData()
	data.Integration = false

	wire := formatRequest(data)
	require.True(t, wire.Integration)
}
