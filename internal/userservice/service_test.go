package userservice

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/listing"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/passpkg"
	"github.com/go-petr/bank-admin/pkg/querypkg"
	"github.com/go-petr/bank-admin/pkg/randompkg"
)

func randomUser(t *testing.T) (domain.UserWithPassword, string) {
	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) failed: %v", password, err)
	}

	user := domain.UserWithPassword{
		User: domain.User{
			ID:        int64(randompkg.IntBetween(1, 1000)),
			FirstName: randompkg.Name(),
			LastName:  randompkg.Name(),
			Email:     randompkg.Email(),
			Username:  randompkg.Username(),
			Role:      domain.RoleUser,
			Status:    domain.UserActive,
			CreatedAt: time.Now().Truncate(time.Second).UTC(),
		},
		HashedPassword: hashedPassword,
	}

	return user, password
}

func TestList(t *testing.T) {
	t.Parallel()

	user, _ := randomUser(t)

	testCases := []struct {
		name       string
		req        listing.Request
		buildStubs func(userRepo *MockRepo)
		want       pagepkg.Page[domain.User]
		wantError  error
	}{
		{
			name: "OK",
			req: listing.Request{
				Page:    2,
				Limit:   10,
				Search:  "doe",
				Filters: map[querypkg.Field]string{"asset": "IDR", "status": "PENDING"},
			},
			buildStubs: func(userRepo *MockRepo) {
				// Users have no filters, only the search applies.
				where := querypkg.And{querypkg.Or{
					querypkg.Contains{Field: "firstName", Text: "doe"},
					querypkg.Contains{Field: "lastName", Text: "doe"},
					querypkg.Contains{Field: "email", Text: "doe"},
					querypkg.Contains{Field: "username", Text: "doe"},
				}}

				userRepo.EXPECT().
					Find(gomock.Any(), gomock.Eq(where), gomock.Eq(int32(10)), gomock.Eq(int64(10))).
					Times(1).
					Return([]domain.User{user.User}, nil)
				userRepo.EXPECT().
					Count(gomock.Any(), gomock.Eq(where)).
					Times(1).
					Return(int64(11), nil)
			},
			want: pagepkg.Page[domain.User]{
				Items:      []domain.User{user.User},
				Pagination: pagepkg.Meta{Total: 11, Page: 2, Limit: 10, TotalPages: 2},
			},
		},
		{
			name: "Empty",
			req:  listing.Request{Page: 1, Limit: 10},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Find(gomock.Any(), gomock.Eq(querypkg.And{}), gomock.Eq(int32(10)), gomock.Eq(int64(0))).
					Times(1).
					Return(nil, nil)
				userRepo.EXPECT().
					Count(gomock.Any(), gomock.Eq(querypkg.And{})).
					Times(1).
					Return(int64(0), nil)
			},
			want: pagepkg.Page[domain.User]{
				Items:      []domain.User{},
				Pagination: pagepkg.Meta{Total: 0, Page: 1, Limit: 10, TotalPages: 0},
			},
		},
		{
			name: "RepoError",
			req:  listing.Request{Page: 1, Limit: 10},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Find(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					AnyTimes().
					Return(nil, errorspkg.ErrInternal)
				userRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					AnyTimes().
					Return(int64(3), nil)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			tc.buildStubs(userRepo)

			got, err := New(userRepo).List(context.Background(), tc.req)
			if !errors.Is(err, tc.wantError) {
				t.Fatalf("userService.List(ctx, %+v) error = %v, want %v", tc.req, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("userService.List(ctx, %+v) mismatch (-want +got):\n%s", tc.req, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	user, _ := randomUser(t)

	testCases := []struct {
		name      string
		repoUser  domain.User
		repoErr   error
		wantError error
	}{
		{name: "OK", repoUser: user.User},
		{name: "NotFound", repoErr: domain.ErrUserNotFound, wantError: domain.ErrUserNotFound},
		{name: "Internal", repoErr: errorspkg.ErrInternal, wantError: errorspkg.ErrInternal},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userRepo.EXPECT().
				Get(gomock.Any(), gomock.Eq(user.ID)).
				Times(1).
				Return(tc.repoUser, tc.repoErr)

			got, err := New(userRepo).Get(context.Background(), user.ID)
			if err != tc.wantError {
				t.Fatalf("userService.Get(ctx, %v) error = %v, want %v", user.ID, err, tc.wantError)
			}

			if diff := cmp.Diff(tc.repoUser, got); diff != "" {
				t.Errorf("userService.Get(ctx, %v) mismatch (-want +got):\n%s", user.ID, diff)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	testCases := []struct {
		name          string
		email         string
		password      string
		buildStubs    func(userRepo *MockRepo)
		checkResponse func(t *testing.T, got domain.User)
		wantError     error
	}{
		{
			name:     "OK",
			email:    user.Email,
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), user.Email).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.User) {
				if !cmp.Equal(got, user.User) {
					t.Errorf("domain.User = %+v, want %+v", got, user.User)
				}
			},
		},
		{
			name:     "GetUserError",
			email:    user.Email,
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), user.Email).
					Times(1).
					Return(domain.UserWithPassword{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
		{
			name:     "WrongPassword",
			email:    user.Email,
			password: "wrong",
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), user.Email).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrWrongPassword,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			userService := New(userRepo)

			tc.buildStubs(userRepo)

			got, err := userService.CheckPassword(context.Background(),
				tc.email,
				tc.password,
			)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("userService.CheckPassword(context.Background(), %v, %v) got error %v, want %v",
					tc.email, tc.password, err, tc.wantError)
			}

			tc.checkResponse(t, got)
		})
	}
}
