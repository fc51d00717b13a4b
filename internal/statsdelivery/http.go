// Package statsdelivery manages delivery layer of dashboard statistics.
package statsdelivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/pkg/errorspkg"
	"github.com/go-petr/bank-admin/pkg/web"
)

// Service provides service layer interface needed by stats delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package statsdelivery
type Service interface {
	DashboardMetrics(ctx context.Context, month, year int) (domain.DashboardStats, error)
	Location() *time.Location
}

// Handler facilitates stats delivery layer logic.
type Handler struct {
	service Service
	now     func() time.Time
}

// NewHandler returns stats handler.
func NewHandler(s Service) *Handler {
	return &Handler{
		service: s,
		now:     time.Now,
	}
}

// Dashboard handles http request to return the dashboard of one calendar month.
//
// Query: month (1-12), year. Missing or invalid values fall back to the current
// month and year in the dashboard location.
func (h *Handler) Dashboard(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	month, year := h.period(gctx.Query("month"), gctx.Query("year"))

	stats, err := h.service.DashboardMetrics(ctx, month, year)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Success(stats, "Dashboard metrics fetched successfully"))
}

func (h *Handler) period(monthQ, yearQ string) (int, int) {
	now := h.now().In(h.service.Location())

	month, err := strconv.Atoi(monthQ)
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	year, err := strconv.Atoi(yearQ)
	if err != nil || year < 1 || year > 9999 {
		year = now.Year()
	}

	return month, year
}
