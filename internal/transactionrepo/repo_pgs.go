// Package transactionrepo manages repository layer of deposits and withdrawals.
package transactionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/pkg/dbpkg"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// Table describes where transactions of one kind are stored.
type Table struct {
	Name      string
	Reference string
}

// Tables of every transaction kind.
var Tables = map[domain.TxKind]Table{
	domain.Deposit:  {Name: "deposits", Reference: "deposit_id"},
	domain.Withdraw: {Name: "withdraws", Reference: "withdraw_id"},
}

// RepoPGS facilitates transaction repository layer logic for one transaction kind.
type RepoPGS struct {
	db      dbpkg.SQLInterface
	table   Table
	columns dbpkg.Columns
	selectQ string
}

// NewRepoPGS returns transaction RepoPGS of the given kind.
func NewRepoPGS(db dbpkg.SQLInterface, kind domain.TxKind) *RepoPGS {
	table, ok := Tables[kind]
	if !ok {
		panic(fmt.Sprintf("transactionrepo: unknown kind %q", kind))
	}

	return &RepoPGS{
		db:    db,
		table: table,
		columns: dbpkg.Columns{
			"reference":      "t." + table.Reference,
			"asset":          "t.asset",
			"status":         "t.status",
			"createdAt":      "t.created_at",
			"user.firstName": "u.first_name",
			"user.lastName":  "u.last_name",
			"user.email":     "u.email",
		},
		selectQ: fmt.Sprintf(`
SELECT
	t.id,
	'%s' AS kind,
	t.%s AS reference,
	t.asset,
	t.amount,
	t.amount_nett,
	t.status,
	t.user_id,
	t.created_at,
	t.updated_at,
	u.id AS "user.id",
	u.first_name AS "user.first_name",
	u.last_name AS "user.last_name",
	u.email AS "user.email"
FROM %s t
JOIN users u ON u.id = t.user_id
`, kind, table.Reference, table.Name),
	}
}

// NewDepositRepo returns RepoPGS over deposits.
func NewDepositRepo(db dbpkg.SQLInterface) *RepoPGS {
	return NewRepoPGS(db, domain.Deposit)
}

// NewWithdrawRepo returns RepoPGS over withdrawals.
func NewWithdrawRepo(db dbpkg.SQLInterface) *RepoPGS {
	return NewRepoPGS(db, domain.Withdraw)
}

// Create creates the transaction and then returns it with its owner.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if arg.Status == "" {
		arg.Status = domain.TxPending
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
    %s,
    asset,
    amount,
    amount_nett,
    status,
    user_id,
    created_at,
    updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $7
) RETURNING id
`, r.table.Name, r.table.Reference)

	var id int64

	err := r.db.QueryRowxContext(ctx, query,
		arg.Reference,
		arg.Asset,
		arg.Amount,
		arg.AmountNett,
		arg.Status,
		arg.UserID,
		createdAt.UTC().Truncate(time.Microsecond),
	).Scan(&id)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, r.mapError(err)
	}

	var tx domain.Transaction

	if err := r.db.GetContext(ctx, &tx, r.selectQ+`WHERE t.id = $1`, id); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return tx, nil
}

func (r *RepoPGS) mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return errorspkg.ErrInternal
	}

	switch {
	case pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == r.table.Name+"_"+r.table.Reference+"_key":
		return domain.ErrReferenceAlreadyExists
	case pqErr.Code.Name() == "foreign_key_violation" && pqErr.Constraint == r.table.Name+"_user_id_fkey":
		return domain.ErrOwnerNotFound
	}

	return errorspkg.ErrInternal
}

// Find returns a page of transactions matching where, most recent first.
func (r *RepoPGS) Find(ctx context.Context, where querypkg.Condition, limit int32, offset int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	cond, args, err := dbpkg.Where(where, r.columns)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	query := fmt.Sprintf(`%sWHERE %s ORDER BY t.created_at DESC, t.id DESC LIMIT $%d OFFSET $%d`,
		r.selectQ, cond, len(args)+1, len(args)+2)

	var txs []domain.Transaction

	if err := r.db.SelectContext(ctx, &txs, query, append(args, limit, offset)...); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return txs, nil
}

// Count returns the number of transactions matching where.
func (r *RepoPGS) Count(ctx context.Context, where querypkg.Condition) (int64, error) {
	l := zerolog.Ctx(ctx)

	cond, args, err := dbpkg.Where(where, r.columns)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s t JOIN users u ON u.id = t.user_id WHERE %s`, r.table.Name, cond)

	var total int64

	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return total, nil
}
