//go:build integration

package httpserver_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-admin/cmd/httpserver"
	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/integrationtest"
	"github.com/go-petr/bank-admin/internal/seed"
	"github.com/go-petr/bank-admin/pkg/configpkg"
)

func TestDashboardPostgres(t *testing.T) {
	config, err := configpkg.Load("../../configs")
	require.NoError(t, err)

	config.RedisAddr = ""

	db := integrationtest.SetupDB(t, config.DBDriver, config.DBSource)

	loc, err := config.Location()
	require.NoError(t, err)

	require.NoError(t, seed.New(db).Run(context.Background(), []int{2024}, loc))

	server, err := httpserver.New(db, zerolog.Nop(), config)
	require.NoError(t, err)

	token := login(t, server, seed.AdminEmail, seed.AdminPassword)

	recorder, res := do(t, server, http.MethodGet, "/api/v1/stats/dashboard?month=2&year=2024", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, res.Error)

	var stats domain.DashboardStats
	decodeData(t, recorder, &stats)

	require.Len(t, stats.ChartData, 29)
	require.GreaterOrEqual(t, stats.TotalRegistered, int64(2))
	require.GreaterOrEqual(t, stats.WithdrawCount, int64(1))

	chartWithdraw := stats.ChartData[0].Withdraw
	for _, p := range stats.ChartData[1:] {
		chartWithdraw = chartWithdraw.Add(p.Withdraw)
	}

	require.True(t, stats.TotalWithdraw.Equal(chartWithdraw))
}
