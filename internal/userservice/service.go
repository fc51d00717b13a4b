// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/listing"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/passpkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
)

// SearchSpec lists the user fields matched by search text. Users have no categorical filters.
var SearchSpec = querypkg.Spec{
	Search: []querypkg.Field{"firstName", "lastName", "email", "username"},
}

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.UserWithPassword, error)
	Find(ctx context.Context, where querypkg.Condition, limit int32, offset int64) ([]domain.User, error)
	Count(ctx context.Context, where querypkg.Condition) (int64, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo   Repo
	lister listing.Lister[domain.User]
}

// New return user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{
		repo:   ur,
		lister: listing.New[domain.User](SearchSpec, ur),
	}
}

// List returns the requested page of users.
func (s *Service) List(ctx context.Context, req listing.Request) (pagepkg.Page[domain.User], error) {
	return s.lister.List(ctx, req)
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// CheckPassword checks if the password is valid for the user with the given email.
func (s *Service) CheckPassword(ctx context.Context, email, pass string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	gotUser, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	err = passpkg.Check(pass, gotUser.HashedPassword)
	if err != nil {
		l.Warn().Err(err).Send()
		return domain.User{}, domain.ErrWrongPassword
	}

	return gotUser.User, nil
}
