package disbursement

import "github.com/wirepay/momo-go/pkg/momo/model"

// TransferRequest describes a disbursement: money moves from the owning
// account to the payee.
type TransferRequest struct {
	Amount       string      `json:"amount" validate:"required,amount"`
	Currency     string      `json:"currency" validate:"required,iso4217"`
	ExternalID   string      `json:"externalId,omitempty" validate:"omitempty,max=128"`
	Payee        model.Party `json:"payee" validate:"required"`
	PayerMessage string      `json:"payerMessage,omitempty" validate:"omitempty,max=160"`
	PayeeNote    string      `json:"payeeNote,omitempty" validate:"omitempty,max=160"`
}
