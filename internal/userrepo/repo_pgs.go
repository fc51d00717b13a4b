// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"
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

// Columns maps searchable user fields to columns.
var Columns = dbpkg.Columns{
	"firstName":     "first_name",
	"lastName":      "last_name",
	"email":         "email",
	"username":      "username",
	"role":          "role",
	"status":        "status",
	"isKycVerified": "is_kyc_verified",
	"createdAt":     "created_at",
}

const userColumns = `id, first_name, last_name, email, username, role, status, is_kyc_verified, created_at, updated_at`

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    first_name,
    last_name,
    email,
    username,
    password,
    role,
    status,
    is_kyc_verified,
    created_at,
    updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $9
) RETURNING id
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	createdAt := arg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	createdAt = createdAt.UTC().Truncate(time.Microsecond)

	if arg.Role == "" {
		arg.Role = domain.RoleUser
	}

	if arg.Status == "" {
		arg.Status = domain.UserActive
	}

	var id int64

	err := r.db.QueryRowxContext(ctx, CreateQuery,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Username,
		arg.HashedPassword,
		arg.Role,
		arg.Status,
		arg.IsKycVerified,
		createdAt,
	).Scan(&id)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, mapError(err)
	}

	return domain.User{
		ID:            id,
		FirstName:     arg.FirstName,
		LastName:      arg.LastName,
		Email:         arg.Email,
		Username:      arg.Username,
		Role:          arg.Role,
		Status:        arg.Status,
		IsKycVerified: arg.IsKycVerified,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}, nil
}

func mapError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		switch pqErr.Constraint {
		case "users_username_key":
			return domain.ErrUsernameAlreadyExists
		case "users_email_key":
			return domain.ErrEmailAlreadyExists
		}
	}

	return errorspkg.ErrInternal
}

const getQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	var u domain.User

	err := r.db.GetContext(ctx, &u, getQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getByEmailQuery = `SELECT ` + userColumns + `, password FROM users WHERE email = $1`

// GetByEmail returns the user with the given email together with the password hash.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	l := zerolog.Ctx(ctx)

	var u domain.UserWithPassword

	err := r.db.GetContext(ctx, &u, getByEmailQuery, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

// Find returns a page of users matching where, most recent first.
func (r *RepoPGS) Find(ctx context.Context, where querypkg.Condition, limit int32, offset int64) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	cond, args, err := dbpkg.Where(where, Columns)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		userColumns, cond, len(args)+1, len(args)+2)

	var users []domain.User

	if err := r.db.SelectContext(ctx, &users, query, append(args, limit, offset)...); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return users, nil
}

// Count returns the number of users matching where.
func (r *RepoPGS) Count(ctx context.Context, where querypkg.Condition) (int64, error) {
	l := zerolog.Ctx(ctx)

	cond, args, err := dbpkg.Where(where, Columns)
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
