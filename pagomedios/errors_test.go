package pagomedios

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageCarriesKind(t *testing.T) {
	err := newError(KindTaxIncorrect, "rate %v rejected", 0.5)
	require.EqualError(t, err, "pagomedios: tax-incorrect: rate 0.5 rejected")
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("create payment request failed: %w", newError(KindBody, "bad payload"))
	require.Equal(t, KindBody, KindOf(err))

	var typed *Error
	require.True(t, errors.As(err, &typed))
	require.Equal(t, "bad payload", typed.Message)
}

func TestKindOfForeignError(t *testing.T) {
	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestErrorKindStrings(t *testing.T) {
	kinds := map[ErrorKind]string{
		KindUnknown:       "unknown",
		KindToken:         "token",
		KindConnection:    "connection",
		KindStatus:        "status",
		KindBody:          "body",
		KindIDRequest:     "id-request",
		KindTaxIncorrect:  "tax-incorrect",
		KindPathIncorrect: "path-incorrect",
		KindNotFound:      "not-found",
	}
	for kind, name := range kinds {
		require.Equal(t, name, kind.String())
	}
}
