// Package statsservice manages business logic layer of dashboard statistics.
package statsservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/pkg/cachepkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// Logical fields the repo must understand.
const (
	FieldCreatedAt     querypkg.Field = "createdAt"
	FieldAsset         querypkg.Field = "asset"
	FieldIsKycVerified querypkg.Field = "isKycVerified"
)

// Repo provides data access layer interface needed by stats service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statsservice
type Repo interface {
	// SumTransactions sums amounts and counts the transactions of the given kind matching where.
	SumTransactions(ctx context.Context, kind domain.TxKind, where querypkg.Condition) (domain.TxTotals, error)
	// SumTransactionsByCreatedAt sums amounts of the matching transactions per distinct creation timestamp.
	SumTransactionsByCreatedAt(ctx context.Context, kind domain.TxKind, where querypkg.Condition) ([]domain.TimestampSum, error)
	// CountUsers counts the users matching where.
	CountUsers(ctx context.Context, where querypkg.Condition) (int64, error)
}

// Cache stores computed dashboards.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Config holds the dashboard calendar and reporting settings.
type Config struct {
	// Location is the calendar used for month bounds and daily buckets. Defaults to UTC.
	Location *time.Location
	Locale   Locale
	// Asset is the only asset summed into the dashboard. Defaults to IDR.
	Asset    string
	CacheTTL time.Duration
}

// Service facilitates stats service layer logic.
type Service struct {
	repo  Repo
	cache Cache
	cfg   Config
}

// New returns stats service struct to compute dashboards. The cache may be nil.
func New(r Repo, c Cache, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	if cfg.Asset == "" {
		cfg.Asset = domain.AssetIDR
	}

	return &Service{
		repo:  r,
		cache: c,
		cfg:   cfg,
	}
}

// Location returns the dashboard calendar location.
func (s *Service) Location() *time.Location {
	return s.cfg.Location
}

func (s *Service) cacheKey(year, month int) string {
	return fmt.Sprintf("stats:dashboard:%04d-%02d:%s:%s:%s",
		year, month, s.cfg.Asset, s.cfg.Location, s.cfg.Locale)
}

// DashboardMetrics returns the dashboard summary of the given calendar month.
func (s *Service) DashboardMetrics(ctx context.Context, month, year int) (domain.DashboardStats, error) {
	l := zerolog.Ctx(ctx)

	var stats domain.DashboardStats

	start, end, err := Period(year, month, s.cfg.Location)
	if err != nil {
		return stats, err
	}

	key := s.cacheKey(year, month)

	if s.cache != nil {
		err := s.cache.Get(ctx, key, &stats)
		if err == nil {
			return stats, nil
		}

		if !errors.Is(err, cachepkg.ErrMiss) {
			l.Warn().Err(err).Str("key", key).Msg("dashboard cache read failed")
		}

		stats = domain.DashboardStats{}
	}

	inMonth := querypkg.Between{Field: FieldCreatedAt, From: start, To: end}
	txWhere := querypkg.And{inMonth, querypkg.Equals{Field: FieldAsset, Value: s.cfg.Asset}}
	kycWhere := querypkg.And{inMonth, querypkg.Equals{Field: FieldIsKycVerified, Value: true}}

	var (
		deposits, withdraws           domain.TxTotals
		registered, verified          int64
		dailyDeposits, dailyWithdraws []domain.TimestampSum
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		deposits, err = s.repo.SumTransactions(gctx, domain.Deposit, txWhere)
		return err
	})

	g.Go(func() (err error) {
		withdraws, err = s.repo.SumTransactions(gctx, domain.Withdraw, txWhere)
		return err
	})

	g.Go(func() (err error) {
		registered, err = s.repo.CountUsers(gctx, inMonth)
		return err
	})

	g.Go(func() (err error) {
		verified, err = s.repo.CountUsers(gctx, kycWhere)
		return err
	})

	g.Go(func() (err error) {
		dailyDeposits, err = s.repo.SumTransactionsByCreatedAt(gctx, domain.Deposit, txWhere)
		return err
	})

	g.Go(func() (err error) {
		dailyWithdraws, err = s.repo.SumTransactionsByCreatedAt(gctx, domain.Withdraw, txWhere)
		return err
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	chart := NewChart(year, time.Month(month), s.cfg.Locale)
	AddDaily(chart, dailyDeposits, domain.Deposit, s.cfg.Location)
	AddDaily(chart, dailyWithdraws, domain.Withdraw, s.cfg.Location)

	stats = domain.DashboardStats{
		TotalDeposit:     sumOrZero(deposits.Amount),
		DepositCount:     deposits.Count,
		TotalWithdraw:    sumOrZero(withdraws.Amount),
		WithdrawCount:    withdraws.Count,
		TotalRegistered:  registered,
		TotalVerifiedKyc: verified,
		ChartData:        chart,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.cfg.CacheTTL); err != nil {
			l.Warn().Err(err).Str("key", key).Msg("dashboard cache write failed")
		}
	}

	return stats, nil
}
