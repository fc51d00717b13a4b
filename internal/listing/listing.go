// Package listing implements filtered, paginated listings over entity collections.
package listing

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// ErrInvalidPage indicates a page or limit below 1.
var ErrInvalidPage = errors.New("page and limit must be positive")

// Store is the collection a Lister reads from.
//
// Find returns records matching where, most recent first, skipping offset records
// and returning at most limit of them. Count returns the number of matching records.
type Store[T any] interface {
	Find(ctx context.Context, where querypkg.Condition, limit int32, offset int64) ([]T, error)
	Count(ctx context.Context, where querypkg.Condition) (int64, error)
}

// Request is a page request.
type Request struct {
	Page    int32
	Limit   int32
	Search  string
	Filters map[querypkg.Field]string
}

// Lister is a filterable, paginatable projection of one collection.
type Lister[T any] struct {
	Spec  querypkg.Spec
	Store Store[T]
}

// New returns Lister reading from store and shaping predicates with spec.
func New[T any](spec querypkg.Spec, store Store[T]) Lister[T] {
	return Lister[T]{Spec: spec, Store: store}
}

// List returns the requested page of records matching the request predicate.
//
// The page and the total count are fetched concurrently. If either fails, List fails.
func (l Lister[T]) List(ctx context.Context, req Request) (pagepkg.Page[T], error) {
	var page pagepkg.Page[T]

	if req.Page < 1 || req.Limit < 1 {
		return page, ErrInvalidPage
	}

	where := l.Spec.Build(req.Search, req.Filters)
	offset := pagepkg.Offset(req.Page, req.Limit)

	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		items, err = l.Store.Find(gctx, where, req.Limit, offset)

		return err
	})

	g.Go(func() error {
		var err error
		total, err = l.Store.Count(gctx, where)

		return err
	})

	if err := g.Wait(); err != nil {
		return page, err
	}

	if items == nil {
		items = []T{}
	}

	page.Items = items
	page.Pagination = pagepkg.NewMeta(total, req.Page, req.Limit)

	return page, nil
}
