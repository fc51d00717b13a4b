package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrReferenceAlreadyExists indicates that a transaction with the given reference already exists.
	ErrReferenceAlreadyExists = errors.New("Transaction reference already exists")
	// ErrOwnerNotFound indicates that the owner of the transaction is not found.
	ErrOwnerNotFound = errors.New("Owner not found")
)

// AssetIDR is the rupiah asset tag. Dashboard totals are reported in it.
const AssetIDR = "IDR"

func init() {
	// Amounts go over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TxKind tells deposits from withdrawals.
type TxKind string

// Supported transaction kinds.
const (
	Deposit  TxKind = "deposit"
	Withdraw TxKind = "withdraw"
)

// TxStatus is the processing status of a transaction.
type TxStatus string

// Supported transaction statuses.
const (
	TxPending  TxStatus = "PENDING"
	TxSuccess  TxStatus = "SUCCESS"
	TxRejected TxStatus = "REJECTED"
)

// Transaction holds a deposit or a withdrawal.
//
// Amounts are in the asset's native unit, no conversion between assets happens.
// In JSON the reference is keyed by kind, depositId or withdrawId.
type Transaction struct {
	ID         int64           `json:"id" db:"id"`
	Kind       TxKind          `json:"-" db:"kind"`
	Reference  string          `json:"-" db:"reference"`
	Asset      string          `json:"asset" db:"asset"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	AmountNett decimal.Decimal `json:"amountNett" db:"amount_nett"`
	Status     TxStatus        `json:"status" db:"status"`
	UserID     int64           `json:"userId" db:"user_id"`
	User       Owner           `json:"user" db:"user"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// CreateTransactionParams is the input data to create a transaction.
type CreateTransactionParams struct {
	Reference  string
	Asset      string
	Amount     decimal.Decimal
	AmountNett decimal.Decimal
	Status     TxStatus
	UserID     int64
	CreatedAt  time.Time // zero means now
}

// txFields has the fields of Transaction without its JSON methods.
type txFields Transaction

type txJSON struct {
	txFields
	DepositID  string `json:"depositId,omitempty"`
	WithdrawID string `json:"withdrawId,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (t Transaction) MarshalJSON() ([]byte, error) {
	v := txJSON{txFields: txFields(t)}

	if t.Kind == Withdraw {
		v.WithdrawID = t.Reference
	} else {
		v.DepositID = t.Reference
	}

	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. The kind follows the reference key.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var v txJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*t = Transaction(v.txFields)

	if v.WithdrawID != "" {
		t.Kind, t.Reference = Withdraw, v.WithdrawID
	} else {
		t.Kind, t.Reference = Deposit, v.DepositID
	}

	return nil
}
