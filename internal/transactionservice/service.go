// Package transactionservice manages business logic layer of deposits and withdrawals.
package transactionservice

import (
	"context"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/listing"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// Filterable transaction fields.
const (
	FieldAsset  querypkg.Field = "asset"
	FieldStatus querypkg.Field = "status"
)

// SearchSpec lists the fields matched by search text and the categorical filters of transactions.
var SearchSpec = querypkg.Spec{
	Search:  []querypkg.Field{"reference", "user.firstName", "user.lastName", "user.email"},
	Filters: []querypkg.Field{FieldAsset, FieldStatus},
}

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Find(ctx context.Context, where querypkg.Condition, limit int32, offset int64) ([]domain.Transaction, error)
	Count(ctx context.Context, where querypkg.Condition) (int64, error)
}

// Service facilitates transaction service layer logic for one transaction kind.
type Service struct {
	kind   domain.TxKind
	lister listing.Lister[domain.Transaction]
}

// New returns transaction service listing transactions of kind from r.
func New(kind domain.TxKind, r Repo) *Service {
	return &Service{
		kind:   kind,
		lister: listing.New[domain.Transaction](SearchSpec, r),
	}
}

// Kind returns the transaction kind the service lists.
func (s *Service) Kind() domain.TxKind {
	return s.kind
}

// List returns the requested page of transactions.
func (s *Service) List(ctx context.Context, req listing.Request) (pagepkg.Page[domain.Transaction], error) {
	return s.lister.List(ctx, req)
}
