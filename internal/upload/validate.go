package upload

import (
	"strconv"
	"strings"
)

// MinPrice is the exclusive lower bound for a photo price.
const MinPrice = 60

// Rejection reasons, in the order Validate checks them.
const (
	ReasonMissingCredential = "missing credential"
	ReasonNoFiles           = "no files selected"
	ReasonMissingEventID    = "missing event id"
	ReasonMissingLocation   = "missing location"
	ReasonPriceNotNumeric   = "price must be numeric"
	ReasonPriceTooLow       = "price must exceed 60"
)

// ValidationError rejects a whole batch before any request is sent.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks a batch and returns its parsed price. Checks stop at the
// first failure. Fractional prices are not numeric here.
func Validate(b Batch) (int, error) {
	switch {
	case strings.TrimSpace(b.Credential) == "":
		return 0, &ValidationError{Reason: ReasonMissingCredential}
	case len(b.Files) == 0:
		return 0, &ValidationError{Reason: ReasonNoFiles}
	case strings.TrimSpace(b.EventID) == "":
		return 0, &ValidationError{Reason: ReasonMissingEventID}
	case strings.TrimSpace(b.Location) == "":
		return 0, &ValidationError{Reason: ReasonMissingLocation}
	}

	price, err := strconv.Atoi(strings.TrimSpace(b.Price))
	if err != nil {
		return 0, &ValidationError{Reason: ReasonPriceNotNumeric}
	}
	if price <= MinPrice {
		return 0, &ValidationError{Reason: ReasonPriceTooLow}
	}
	return price, nil
}
