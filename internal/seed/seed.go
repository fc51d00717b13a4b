// Package seed fills the database with demo accounts and random monthly activity.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/transactionrepo"
	"github.com/go-petr/bank-admin/internal/userrepo"
	"github.com/go-petr/bank-admin/pkg/dbpkg"
	"github.com/go-petr/bank-admin/pkg/passpkg"
	"github.com/go-petr/bank-admin/pkg/randompkg"
)

// Demo credentials.
const (
	AdminEmail    = "admin@test.com"
	AdminPassword = "admin123"
	UserEmail     = "user@test.com"
	UserPassword  = "user123"
)

// Share of deposits made in IDR. The rest are BTC.
const idrShare = 0.8

// 1 BTC in IDR, used to scale random BTC deposits.
var btcRate = decimal.NewFromInt(500_000_000)

// Seeder writes demo data through the repositories.
type Seeder struct {
	db        dbpkg.SQLInterface
	users     *userrepo.RepoPGS
	deposits  *transactionrepo.RepoPGS
	withdraws *transactionrepo.RepoPGS
}

// New returns Seeder writing to db.
func New(db dbpkg.SQLInterface) *Seeder {
	return &Seeder{
		db:        db,
		users:     userrepo.NewRepoPGS(db),
		deposits:  transactionrepo.NewDepositRepo(db),
		withdraws: transactionrepo.NewWithdrawRepo(db),
	}
}

// MonthCounts tells how many records were seeded for one month.
type MonthCounts struct {
	Users     int
	Deposits  int
	Withdraws int
}

// Reset removes all transactions and every user but the demo accounts.
func (s *Seeder) Reset(ctx context.Context) error {
	queries := []struct {
		q    string
		args []any
	}{
		{q: `DELETE FROM withdraws`},
		{q: `DELETE FROM deposits`},
		{q: `DELETE FROM users WHERE email NOT IN ($1, $2)`, args: []any{AdminEmail, UserEmail}},
	}

	for _, q := range queries {
		if _, err := s.db.ExecContext(ctx, q.q, q.args...); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	return nil
}

// EnsureUser returns the user with arg.Email, creating it with password if missing.
func (s *Seeder) EnsureUser(ctx context.Context, arg domain.CreateUserParams, password string) (domain.User, error) {
	u, err := s.users.GetByEmail(ctx, arg.Email)
	if err == nil {
		return u.User, nil
	}

	if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	arg.HashedPassword, err = passpkg.Hash(password)
	if err != nil {
		return domain.User{}, err
	}

	return s.users.Create(ctx, arg)
}

// Accounts ensures the demo admin and the demo user exist.
func (s *Seeder) Accounts(ctx context.Context) (admin, user domain.User, err error) {
	admin, err = s.EnsureUser(ctx, domain.CreateUserParams{
		FirstName:     "Admin",
		LastName:      "User",
		Email:         AdminEmail,
		Username:      "Admin",
		Role:          domain.RoleAdmin,
		Status:        domain.UserActive,
		IsKycVerified: true,
	}, AdminPassword)
	if err != nil {
		return admin, user, fmt.Errorf("admin: %w", err)
	}

	user, err = s.EnsureUser(ctx, domain.CreateUserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     UserEmail,
		Username:  "User",
		Role:      domain.RoleUser,
		Status:    domain.UserActive,
	}, UserPassword)
	if err != nil {
		return admin, user, fmt.Errorf("user: %w", err)
	}

	return admin, user, nil
}

// Month seeds random users, deposits and withdrawals created within the calendar month in loc.
//
// Transactions are owned by ownerID.
func (s *Seeder) Month(ctx context.Context, year int, month time.Month, ownerID int64, loc *time.Location) (MonthCounts, error) {
	var counts MonthCounts

	hashed, err := passpkg.Hash(UserPassword)
	if err != nil {
		return counts, err
	}

	nUsers := randompkg.IntBetween(2, 6)
	nDeposits := randompkg.IntBetween(3, 10)
	nWithdraws := randompkg.IntBetween(1, 4)

	for i := 0; i < nUsers; i++ {
		_, err := s.users.Create(ctx, domain.CreateUserParams{
			FirstName:      fmt.Sprintf("User%d", i),
			LastName:       fmt.Sprintf("%d_%d", month, year),
			Email:          fmt.Sprintf("user_%d_%d_%d@example.com", year, month, i),
			Username:       fmt.Sprintf("User_%d_%d_%d", year, month, i),
			HashedPassword: hashed,
			Status:         pick(0.9, domain.UserActive, domain.UserSuspended),
			IsKycVerified:  randompkg.Float64() < 0.5,
			CreatedAt:      randompkg.TimeInMonth(year, month, loc),
		})
		if err != nil {
			return counts, err
		}

		counts.Users++
	}

	for i := 0; i < nDeposits; i++ {
		asset := randompkg.Asset(idrShare)

		amount := randompkg.AmountBetween(1, 100).Mul(decimal.NewFromInt(50_000))
		if asset != domain.AssetIDR {
			amount = amount.Div(btcRate).Round(8)
		}

		_, err := s.deposits.Create(ctx, domain.CreateTransactionParams{
			Reference:  randompkg.Reference("DEPO-" + asset),
			Asset:      asset,
			Amount:     amount,
			AmountNett: amount,
			Status:     pick(0.8, domain.TxSuccess, domain.TxRejected),
			UserID:     ownerID,
			CreatedAt:  randompkg.TimeInMonth(year, month, loc),
		})
		if err != nil {
			return counts, err
		}

		counts.Deposits++
	}

	for i := 0; i < nWithdraws; i++ {
		amount := randompkg.AmountBetween(2, 101).Mul(decimal.NewFromInt(10_000))

		_, err := s.withdraws.Create(ctx, domain.CreateTransactionParams{
			Reference:  randompkg.Reference("WITH-" + domain.AssetIDR),
			Asset:      domain.AssetIDR,
			Amount:     amount,
			AmountNett: amount,
			Status:     domain.TxSuccess,
			UserID:     ownerID,
			CreatedAt:  randompkg.TimeInMonth(year, month, loc),
		})
		if err != nil {
			return counts, err
		}

		counts.Withdraws++
	}

	return counts, nil
}

// Run resets the data, ensures the demo accounts and seeds every month of years.
func (s *Seeder) Run(ctx context.Context, years []int, loc *time.Location) error {
	l := zerolog.Ctx(ctx)

	if err := s.Reset(ctx); err != nil {
		return err
	}

	admin, user, err := s.Accounts(ctx)
	if err != nil {
		return err
	}

	l.Info().Str("admin", admin.Email).Str("user", user.Email).Msg("demo accounts ready")

	for _, year := range years {
		for month := time.January; month <= time.December; month++ {
			counts, err := s.Month(ctx, year, month, user.ID, loc)
			if err != nil {
				return fmt.Errorf("seed %d-%02d: %w", year, month, err)
			}

			l.Debug().
				Int("year", year).
				Int("month", int(month)).
				Int("users", counts.Users).
				Int("deposits", counts.Deposits).
				Int("withdraws", counts.Withdraws).
				Msg("month seeded")
		}
	}

	return nil
}

func pick[T any](p float64, likely, other T) T {
	if randompkg.Float64() < p {
		return likely
	}

	return other
}
