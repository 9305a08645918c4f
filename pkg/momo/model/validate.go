package model

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

var msisdnPattern = regexp.MustCompile(`^[0-9]{8,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Amounts travel as strings on the wire; they must parse as a positive
	// decimal number.
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})

	mustRegister(v, "msisdn", func(fl validator.FieldLevel) bool {
		return msisdnPattern.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateRequest checks a request payload against its struct tags and
// returns a categorized validation error on failure. No network call is
// made for an invalid payload.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return momoerrors.ValidationError(err, "request validation failed")
	}
	return nil
}

// ValidateParty applies the MSISDN digit rule on top of the struct tags when
// the party is identified by phone number.
func ValidateParty(p Party) error {
	if err := validate.Struct(p); err != nil {
		return momoerrors.ValidationError(err, "invalid party")
	}
	if p.PartyIDType == PartyIDTypeMSISDN && !msisdnPattern.MatchString(p.PartyID) {
		return momoerrors.ValidationError(nil, "invalid MSISDN: must be 8-15 digits")
	}
	return nil
}
