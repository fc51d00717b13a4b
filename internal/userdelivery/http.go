// Package userdelivery manages delivery layer of users.
package userdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/listing"
	"github.com/go-petr/bank-admin/internal/middleware"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/tokenpkg"
	"github.com/go-petr/bank-admin/pkg/web"
)

// ErrInvalidCredentials is returned on login with unknown email or wrong password.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// Service provides service layer interface needed by user delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package userdelivery
type Service interface {
	List(ctx context.Context, req listing.Request) (pagepkg.Page[domain.User], error)
	Get(ctx context.Context, id int64) (domain.User, error)
	CheckPassword(ctx context.Context, email, password string) (domain.User, error)
}

// Handler facilitates user delivery layer logic.
type Handler struct {
	service     Service
	tokenMaker  tokenpkg.Maker
	tokenExpiry time.Duration
}

// NewHandler returns user handler.
func NewHandler(us Service, tm tokenpkg.Maker, accessTokenDuration time.Duration) *Handler {
	return &Handler{
		service:     us,
		tokenMaker:  tm,
		tokenExpiry: accessTokenDuration,
	}
}

type userResponse struct {
	User domain.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles http login request and returns user and access token.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	user, err := h.service.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password look the same to the client.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWrongPassword) {
			gctx.JSON(http.StatusUnauthorized, web.Error(ErrInvalidCredentials))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	if user.Status != domain.UserActive {
		gctx.JSON(http.StatusForbidden, web.Error(middleware.ErrForbidden))
		return
	}

	subject := tokenpkg.Subject{UserID: user.ID, Email: user.Email, Role: string(user.Role)}

	accessToken, payload, err := h.tokenMaker.CreateToken(subject, h.tokenExpiry)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Message:              "Login successful",
		AccessToken:          accessToken,
		AccessTokenExpiresAt: payload.ExpiredAt.UTC().Format(time.RFC3339),
		Data:                 userResponse{User: user},
	}

	gctx.JSON(http.StatusOK, res)
}

// Me handles http request to return the profile of the authenticated user.
func (h *Handler) Me(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	payload, ok := middleware.Payload(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	user, err := h.service.Get(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success(userResponse{User: user}, "User profile fetched successfully"))
}

// List handles http request to list users.
//
// Query: page, limit, search.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	page, err := h.service.List(ctx, listing.ParseRequest(gctx.Query))
	if err != nil {
		if errors.Is(err, listing.ErrInvalidPage) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success(page, "Users fetched successfully"))
}
