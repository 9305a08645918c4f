// Package model defines the wire shapes shared by the mobile-money product
// clients, together with request payload validation.
package model

// Party identity types accepted by the API.
const (
	PartyIDTypeMSISDN    = "MSISDN"
	PartyIDTypeEmail     = "EMAIL"
	PartyIDTypePartyCode = "PARTY_CODE"
)

// Transaction statuses reported by the API.
const (
	StatusPending    = "PENDING"
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
)

// Party identifies a counterpart account holder.
type Party struct {
	PartyIDType string `json:"partyIdType" validate:"required,oneof=MSISDN EMAIL PARTY_CODE"`
	PartyID     string `json:"partyId" validate:"required,max=64"`
}

// Balance is the available balance of a product account.
type Balance struct {
	AvailableBalance string `json:"availableBalance"`
	Currency         string `json:"currency"`
}

// Reason describes why a transaction failed.
type Reason struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Transaction is the record returned by the per-reference status lookups.
// Exactly one of Payer or Payee is set, depending on the product.
type Transaction struct {
	FinancialTransactionID string  `json:"financialTransactionId,omitempty"`
	ExternalID             string  `json:"externalId,omitempty"`
	Amount                 string  `json:"amount"`
	Currency               string  `json:"currency"`
	Payer                  *Party  `json:"payer,omitempty"`
	Payee                  *Party  `json:"payee,omitempty"`
	PayerMessage           string  `json:"payerMessage,omitempty"`
	PayeeNote              string  `json:"payeeNote,omitempty"`
	Status                 string  `json:"status"`
	Reason                 *Reason `json:"reason,omitempty"`
}
