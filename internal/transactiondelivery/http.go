// Package transactiondelivery manages delivery layer of deposits and withdrawals.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/listing"
	"github.com/go-petr/bank-admin/internal/transactionservice"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	List(ctx context.Context, req listing.Request) (pagepkg.Page[domain.Transaction], error)
}

// Handler facilitates transaction delivery layer logic for one transaction kind.
type Handler struct {
	service Service
	message string
}

// NewHandler returns transaction handler listing transactions of kind.
func NewHandler(s Service, kind domain.TxKind) *Handler {
	msg := "Deposits fetched successfully"
	if kind == domain.Withdraw {
		msg = "Withdrawals fetched successfully"
	}

	return &Handler{
		service: s,
		message: msg,
	}
}

// List handles http request to list transactions.
//
// Query: page, limit, search, asset, status.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	req := listing.ParseRequest(gctx.Query, transactionservice.FieldAsset, transactionservice.FieldStatus)

	page, err := h.service.List(ctx, req)
	if err != nil {
		if errors.Is(err, listing.ErrInvalidPage) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success(page, h.message))
}
