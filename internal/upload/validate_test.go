package upload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBatch() Batch {
	return Batch{
		Credential: "tok",
		Files:      []string{"a.jpg"},
		EventID:    "evt-1",
		Location:   "Finish line",
		Price:      "100",
	}
}

func TestValidate_OrderedChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Batch)
		reason string
	}{
		{"blank credential", func(b *Batch) { b.Credential = "   " }, ReasonMissingCredential},
		{"credential checked before files", func(b *Batch) { b.Credential = ""; b.Files = nil }, ReasonMissingCredential},
		{"no files", func(b *Batch) { b.Files = nil }, ReasonNoFiles},
		{"blank event id", func(b *Batch) { b.EventID = "\t" }, ReasonMissingEventID},
		{"event id checked before location", func(b *Batch) { b.EventID = ""; b.Location = "" }, ReasonMissingEventID},
		{"blank location", func(b *Batch) { b.Location = " " }, ReasonMissingLocation},
		{"non-numeric price", func(b *Batch) { b.Price = "abc" }, ReasonPriceNotNumeric},
		{"fractional price", func(b *Batch) { b.Price = "99.5" }, ReasonPriceNotNumeric},
		{"empty price", func(b *Batch) { b.Price = "" }, ReasonPriceNotNumeric},
		{"price at bound", func(b *Batch) { b.Price = "60" }, ReasonPriceTooLow},
		{"negative price", func(b *Batch) { b.Price = "-100" }, ReasonPriceTooLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBatch()
			tt.mutate(&b)

			_, err := Validate(b)
			require.Error(t, err)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "error %v is not a *ValidationError", err)
			assert.Equal(t, tt.reason, vErr.Reason)
		})
	}
}

func TestValidate_AcceptsTrimmedPriceAboveBound(t *testing.T) {
	b := validBatch()
	b.Price = " 61 "
	b.BibNumber = ""

	price, err := Validate(b)
	require.NoError(t, err)
	assert.Equal(t, 61, price)
}
