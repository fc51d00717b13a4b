package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidPeriod indicates a month or year that does not name a calendar month.
var ErrInvalidPeriod = errors.New("invalid period")

// TxTotals holds sum and count rollups of transactions.
//
// Sums are null when no transaction matched.
type TxTotals struct {
	Amount     decimal.NullDecimal `db:"amount"`
	AmountNett decimal.NullDecimal `db:"amount_nett"`
	Count      int64               `db:"count"`
}

// TimestampSum is the amount summed over transactions sharing one creation timestamp.
type TimestampSum struct {
	CreatedAt time.Time           `db:"created_at"`
	Amount    decimal.NullDecimal `db:"amount"`
}

// ChartPoint is one day of the dashboard time series.
type ChartPoint struct {
	Name     string          `json:"name"`
	Deposit  decimal.Decimal `json:"deposit"`
	Withdraw decimal.Decimal `json:"withdraw"`
}

// DashboardStats holds the dashboard summary of one calendar month.
type DashboardStats struct {
	TotalDeposit     decimal.Decimal `json:"totalDeposit"`
	DepositCount     int64           `json:"depositCount"`
	TotalWithdraw    decimal.Decimal `json:"totalWithdraw"`
	WithdrawCount    int64           `json:"withdrawCount"`
	TotalRegistered  int64           `json:"totalRegistered"`
	TotalVerifiedKyc int64           `json:"totalVerifiedKyc"`
	ChartData        []ChartPoint    `json:"chartData"`
}
