// Package statsrepo manages repository layer of dashboard statistics.
package statsrepo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/transactionrepo"
	"github.com/go-petr/bank-admin/pkg/dbpkg"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

var (
	txColumns = dbpkg.Columns{
		"createdAt": "created_at",
		"asset":     "asset",
		"status":    "status",
	}

	userColumns = dbpkg.Columns{
		"createdAt":     "created_at",
		"isKycVerified": "is_kyc_verified",
	}
)

// RepoPGS facilitates stats repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns stats RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func (r *RepoPGS) where(ctx context.Context, kind domain.TxKind, where querypkg.Condition, cols dbpkg.Columns) (string, string, []any, error) {
	table, ok := transactionrepo.Tables[kind]
	if !ok {
		err := fmt.Errorf("unknown transaction kind %q", kind)
		zerolog.Ctx(ctx).Error().Err(err).Send()

		return "", "", nil, errorspkg.ErrInternal
	}

	cond, args, err := dbpkg.Where(where, cols)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return "", "", nil, errorspkg.ErrInternal
	}

	return table.Name, cond, args, nil
}

// SumTransactions sums amounts and counts the transactions of the given kind matching where.
//
// Sums are null when nothing matched.
func (r *RepoPGS) SumTransactions(ctx context.Context, kind domain.TxKind, where querypkg.Condition) (domain.TxTotals, error) {
	l := zerolog.Ctx(ctx)

	var totals domain.TxTotals

	table, cond, args, err := r.where(ctx, kind, where, txColumns)
	if err != nil {
		return totals, err
	}

	query := fmt.Sprintf(`
SELECT
	SUM(amount) AS amount,
	SUM(amount_nett) AS amount_nett,
	COUNT(*) AS count
FROM %s
WHERE %s`, table, cond)

	if err := r.db.GetContext(ctx, &totals, query, args...); err != nil {
		l.Error().Err(err).Send()
		return totals, errorspkg.ErrInternal
	}

	return totals, nil
}

// SumTransactionsByCreatedAt sums amounts of the matching transactions per distinct creation timestamp.
func (r *RepoPGS) SumTransactionsByCreatedAt(ctx context.Context, kind domain.TxKind, where querypkg.Condition) ([]domain.TimestampSum, error) {
	l := zerolog.Ctx(ctx)

	table, cond, args, err := r.where(ctx, kind, where, txColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT
	created_at,
	SUM(amount) AS amount
FROM %s
WHERE %s
GROUP BY created_at
ORDER BY created_at`, table, cond)

	var rows []domain.TimestampSum

	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return rows, nil
}

// CountUsers counts the users matching where.
func (r *RepoPGS) CountUsers(ctx context.Context, where querypkg.Condition) (int64, error) {
	l := zerolog.Ctx(ctx)

	cond, args, err := dbpkg.Where(where, userColumns)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	var total int64

	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users WHERE `+cond, args...); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return total, nil
}
