package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

type payload struct {
	Amount   string `validate:"required,amount"`
	Currency string `validate:"required,iso4217"`
}

func TestValidateRequest_Amount(t *testing.T) {
	cases := []struct {
		amount string
		ok     bool
	}{
		{"2000", true},
		{"0.50", true},
		{"1000000000.99", true},
		{"0", false},
		{"-5", false},
		{"", false},
		{"abc", false},
		{"2,000", false},
	}
	for _, tc := range cases {
		err := ValidateRequest(payload{Amount: tc.amount, Currency: "UGX"})
		if tc.ok {
			assert.NoError(t, err, "amount %q", tc.amount)
		} else {
			assert.True(t, momoerrors.Is(err, momoerrors.CategoryValidation), "amount %q: %v", tc.amount, err)
		}
	}
}

func TestValidateRequest_Currency(t *testing.T) {
	assert.NoError(t, ValidateRequest(payload{Amount: "10", Currency: "EUR"}))
	assert.NoError(t, ValidateRequest(payload{Amount: "10", Currency: "UGX"}))

	for _, currency := range []string{"", "eur", "EURO", "XXX1"} {
		err := ValidateRequest(payload{Amount: "10", Currency: currency})
		assert.True(t, momoerrors.Is(err, momoerrors.CategoryValidation), "currency %q: %v", currency, err)
	}
}

func TestValidateParty(t *testing.T) {
	assert.NoError(t, ValidateParty(Party{PartyIDType: PartyIDTypeMSISDN, PartyID: "256772000000"}))
	assert.NoError(t, ValidateParty(Party{PartyIDType: PartyIDTypeEmail, PartyID: "payer@example.com"}))
	assert.NoError(t, ValidateParty(Party{PartyIDType: PartyIDTypePartyCode, PartyID: "AGENT-001"}))

	cases := []Party{
		{},
		{PartyIDType: "PASSPORT", PartyID: "AB123"},
		{PartyIDType: PartyIDTypeMSISDN, PartyID: "+256772000000"},
		{PartyIDType: PartyIDTypeMSISDN, PartyID: "1234567"},
		{PartyIDType: PartyIDTypeMSISDN, PartyID: "1234567890123456"},
	}
	for i, p := range cases {
		err := ValidateParty(p)
		assert.True(t, momoerrors.Is(err, momoerrors.CategoryValidation), "case %d: %v", i, err)
	}
}
