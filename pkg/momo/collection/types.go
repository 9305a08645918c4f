package collection

import "github.com/wirepay/momo-go/pkg/momo/model"

// PaymentRequest describes a request-to-pay: the payer is prompted to
// approve the payment on their handset.
type PaymentRequest struct {
	Amount       string      `json:"amount" validate:"required,amount"`
	Currency     string      `json:"currency" validate:"required,iso4217"`
	ExternalID   string      `json:"externalId,omitempty" validate:"omitempty,max=128"`
	Payer        model.Party `json:"payer" validate:"required"`
	PayerMessage string      `json:"payerMessage,omitempty" validate:"omitempty,max=160"`
	PayeeNote    string      `json:"payeeNote,omitempty" validate:"omitempty,max=160"`
}
