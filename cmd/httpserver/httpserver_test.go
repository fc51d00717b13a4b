package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/bank-admin/cmd/httpserver"
	"github.com/go-petr/bank-admin/internal/domain"
	"github.com/go-petr/bank-admin/internal/integrationtest"
	"github.com/go-petr/bank-admin/internal/seed"
	"github.com/go-petr/bank-admin/internal/transactionrepo"
	"github.com/go-petr/bank-admin/pkg/configpkg"
	"github.com/go-petr/bank-admin/pkg/pagepkg"
	"github.com/go-petr/bank-admin/pkg/web"
)

func testConfig() configpkg.Config {
	return configpkg.Config{
		TokenType:           "paseto",
		TokenSymmetricKey:   "12345678901234567890123456789012",
		AccessTokenDuration: time.Minute,
		DashboardTimezone:   "UTC",
		DashboardLocale:     "en",
		DashboardAsset:      domain.AssetIDR,
	}
}

type fixture struct {
	server *httpserver.Server
	user   domain.User
}

func setupServer(t *testing.T) fixture {
	t.Helper()

	db := integrationtest.SetupSQLite(t)
	ctx := context.Background()

	_, user, err := seed.New(db).Accounts(ctx)
	require.NoError(t, err)

	deposits := transactionrepo.NewDepositRepo(db)
	withdraws := transactionrepo.NewWithdrawRepo(db)

	txs := []struct {
		repo   *transactionrepo.RepoPGS
		ref    string
		asset  string
		amount int64
		at     time.Time
	}{
		{deposits, "DEPO-IDR-1", domain.AssetIDR, 500000, time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)},
		{deposits, "DEPO-IDR-2", domain.AssetIDR, 250000, time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)},
		{deposits, "DEPO-BTC-1", "BTC", 2, time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)},
		{withdraws, "WITH-IDR-1", domain.AssetIDR, 100000, time.Date(2024, time.March, 31, 23, 0, 0, 0, time.UTC)},
		{withdraws, "WITH-IDR-2", domain.AssetIDR, 70000, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tx := range txs {
		_, err := tx.repo.Create(ctx, domain.CreateTransactionParams{
			Reference:  tx.ref,
			Asset:      tx.asset,
			Amount:     decimal.NewFromInt(tx.amount),
			AmountNett: decimal.NewFromInt(tx.amount),
			Status:     domain.TxSuccess,
			UserID:     user.ID,
			CreatedAt:  tx.at,
		})
		require.NoError(t, err)
	}

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, zerolog.Nop(), testConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, server.Close()) })

	return fixture{server: server, user: user}
}

func do(t *testing.T, s http.Handler, method, target, token string, body any) (*httptest.ResponseRecorder, web.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, target, &buf)
	require.NoError(t, err)

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.ServeHTTP(recorder, req)

	var res web.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return recorder, res
}

func login(t *testing.T, s http.Handler, email, password string) string {
	t.Helper()

	recorder, res := do(t, s, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, recorder.Code, res.Error)
	require.NotEmpty(t, res.AccessToken)

	return res.AccessToken
}

// decodeData re-decodes the data part of the envelope into dest.
func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, dest any) {
	t.Helper()

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func TestAuth(t *testing.T) {
	f := setupServer(t)

	adminToken := login(t, f.server, seed.AdminEmail, seed.AdminPassword)
	userToken := login(t, f.server, seed.UserEmail, seed.UserPassword)

	testCases := []struct {
		name     string
		method   string
		target   string
		token    string
		body     any
		wantCode int
	}{
		{"WrongPassword", http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": seed.AdminEmail, "password": "wrong-password"}, http.StatusUnauthorized},
		{"UnknownEmail", http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "nobody@test.com", "password": "admin123"}, http.StatusUnauthorized},
		{"BadBody", http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin"}, http.StatusBadRequest},
		{"MeAsUser", http.MethodGet, "/api/v1/auth/me", userToken, nil, http.StatusOK},
		{"MeWithoutToken", http.MethodGet, "/api/v1/auth/me", "", nil, http.StatusUnauthorized},
		{"MeWithBadToken", http.MethodGet, "/api/v1/auth/me", "garbage", nil, http.StatusUnauthorized},
		{"UsersAsUser", http.MethodGet, "/api/v1/users", userToken, nil, http.StatusForbidden},
		{"DashboardAsUser", http.MethodGet, "/api/v1/stats/dashboard", userToken, nil, http.StatusForbidden},
		{"UsersWithoutToken", http.MethodGet, "/api/v1/users", "", nil, http.StatusUnauthorized},
		{"UsersAsAdmin", http.MethodGet, "/api/v1/users", adminToken, nil, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, res := do(t, f.server, tc.method, tc.target, tc.token, tc.body)
			require.Equal(t, tc.wantCode, recorder.Code, res.Error)
		})
	}
}

func TestMe(t *testing.T) {
	f := setupServer(t)
	token := login(t, f.server, seed.UserEmail, seed.UserPassword)

	recorder, res := do(t, f.server, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, res.Error)

	var data struct {
		User domain.User `json:"user"`
	}
	decodeData(t, recorder, &data)

	require.Equal(t, f.user.ID, data.User.ID)
	require.Equal(t, seed.UserEmail, data.User.Email)
	require.NotContains(t, recorder.Body.String(), "password")
}

func TestListUsers(t *testing.T) {
	f := setupServer(t)
	token := login(t, f.server, seed.AdminEmail, seed.AdminPassword)

	recorder, res := do(t, f.server, http.MethodGet, "/api/v1/users?search=JOHN&limit=5", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, res.Error)
	require.Equal(t, "Users fetched successfully", res.Message)

	var page pagepkg.Page[domain.User]
	decodeData(t, recorder, &page)

	require.Len(t, page.Items, 1)
	require.Equal(t, seed.UserEmail, page.Items[0].Email)
	require.Equal(t, pagepkg.Meta{Total: 1, Page: 1, Limit: 5, TotalPages: 1}, page.Pagination)
}

func TestListTransactions(t *testing.T) {
	f := setupServer(t)
	token := login(t, f.server, seed.AdminEmail, seed.AdminPassword)

	testCases := []struct {
		name      string
		target    string
		wantKind  domain.TxKind
		wantRefs  []string
		wantTotal int64
	}{
		{"AllDeposits", "/api/v1/deposits", domain.Deposit, []string{"DEPO-BTC-1", "DEPO-IDR-2", "DEPO-IDR-1"}, 3},
		{"DepositsByAsset", "/api/v1/deposits?asset=BTC", domain.Deposit, []string{"DEPO-BTC-1"}, 1},
		{"DepositsPaged", "/api/v1/deposits?limit=2&page=2", domain.Deposit, []string{"DEPO-IDR-1"}, 3},
		{"DepositsByOwner", "/api/v1/deposits?search=doe&status=SUCCESS&limit=1", domain.Deposit, []string{"DEPO-BTC-1"}, 3},
		{"DepositsNoMatch", "/api/v1/deposits?status=PENDING", domain.Deposit, []string{}, 0},
		{"Withdraws", "/api/v1/withdraws?search=with-idr-2", domain.Withdraw, []string{"WITH-IDR-2"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder, res := do(t, f.server, http.MethodGet, tc.target, token, nil)
			require.Equal(t, http.StatusOK, recorder.Code, res.Error)

			var page pagepkg.Page[domain.Transaction]
			decodeData(t, recorder, &page)

			refs := make([]string, len(page.Items))
			for i, tx := range page.Items {
				refs[i] = tx.Reference
				require.Equal(t, tc.wantKind, tx.Kind)
				require.Equal(t, seed.UserEmail, tx.User.Email)
			}

			require.Equal(t, tc.wantRefs, refs)
			require.Equal(t, tc.wantTotal, page.Pagination.Total)
		})
	}
}

func TestDashboard(t *testing.T) {
	f := setupServer(t)
	token := login(t, f.server, seed.AdminEmail, seed.AdminPassword)

	recorder, res := do(t, f.server, http.MethodGet, "/api/v1/stats/dashboard?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, res.Error)
	require.Equal(t, "Dashboard metrics fetched successfully", res.Message)

	// Amounts are plain JSON numbers.
	require.Contains(t, recorder.Body.String(), `"totalDeposit":750000`)

	var stats domain.DashboardStats
	decodeData(t, recorder, &stats)

	require.True(t, decimal.NewFromInt(750000).Equal(stats.TotalDeposit), stats.TotalDeposit.String())
	require.Equal(t, int64(2), stats.DepositCount)
	require.True(t, decimal.NewFromInt(100000).Equal(stats.TotalWithdraw), stats.TotalWithdraw.String())
	require.Equal(t, int64(1), stats.WithdrawCount)

	require.Len(t, stats.ChartData, 31)
	require.Equal(t, "15 Mar", stats.ChartData[14].Name)
	require.True(t, decimal.NewFromInt(750000).Equal(stats.ChartData[14].Deposit))
	require.True(t, stats.ChartData[19].Deposit.IsZero())
	require.True(t, decimal.NewFromInt(100000).Equal(stats.ChartData[30].Withdraw))
}
