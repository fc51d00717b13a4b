package statsservice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-admin/internal/domain"
)

// NewChart returns one zeroed point per day of the month, in day order.
func NewChart(year int, month time.Month, locale Locale) []domain.ChartPoint {
	days := DaysIn(year, month)
	name := locale.ShortMonth(month)

	chart := make([]domain.ChartPoint, days)
	for i := range chart {
		chart[i] = domain.ChartPoint{
			Name:     fmt.Sprintf("%d %s", i+1, name),
			Deposit:  decimal.Zero,
			Withdraw: decimal.Zero,
		}
	}

	return chart
}

// AddDaily adds each row amount into the chart point of the row's day of month in loc.
//
// Null amounts count as zero and days outside the chart are skipped.
func AddDaily(chart []domain.ChartPoint, rows []domain.TimestampSum, kind domain.TxKind, loc *time.Location) {
	for _, row := range rows {
		i := row.CreatedAt.In(loc).Day() - 1
		if i < 0 || i >= len(chart) || !row.Amount.Valid {
			continue
		}

		switch kind {
		case domain.Deposit:
			chart[i].Deposit = chart[i].Deposit.Add(row.Amount.Decimal)
		case domain.Withdraw:
			chart[i].Withdraw = chart[i].Withdraw.Add(row.Amount.Decimal)
		}
	}
}

func sumOrZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}

	return d.Decimal
}
