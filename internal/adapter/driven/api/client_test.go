package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/diillson/finance-tracker-go/internal/adapter/driven/api"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := api.NewClient(server.URL + "/api")
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewClientRejectsInvalidURL(t *testing.T) {
	_, err := api.NewClient("localhost:8080")
	assert.Error(t, err)

	_, err = api.NewClient("ftp://example.com/api")
	assert.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "/api/categories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Food"},{"id":2,"name":"Housing"}]`))
	})

	categories, err := api.NewCategoryClient(c).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{{ID: 1, Name: "Food"}, {ID: 2, Name: "Housing"}}, categories)
}

func TestErrorCarriesBackendMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Title must not be blank"}`))
	})

	_, err := api.NewExpenseClient(c).CreateExpense(context.Background(), entity.Expense{UserID: 1})
	require.Error(t, err)

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Title must not be blank", apiErr.Message)
	assert.Equal(t, "Title must not be blank", types.BackendMessage(err))
	assert.False(t, api.IsRetryable(err))
}

func TestServerErrorIsRetryable(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := api.NewCategoryClient(c).ListCategories(context.Background())
	require.Error(t, err)
	assert.Equal(t, "boom", types.BackendMessage(err))
	assert.True(t, api.IsRetryable(err))
}

func TestLongErrorMessageIsCutOnRuneBoundary(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("é", 250), http.StatusBadGateway)
	})

	_, err := api.NewCategoryClient(c).ListCategories(context.Background())
	require.Error(t, err)

	msg := types.BackendMessage(err)
	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, 200, utf8.RuneCountInString(msg))
	assert.Equal(t, strings.Repeat("é", 197)+"...", msg)
}

func TestFindByEmail(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		switch r.URL.Query().Get("email") {
		case "test@example.com":
			_, _ = w.Write([]byte(`{"id":1,"email":"test@example.com"}`))
		case "missing@example.com":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"User not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	users := api.NewUserClient(c)

	user, err := users.FindByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, &entity.User{ID: 1, Email: "test@example.com"}, user)

	user, err = users.FindByEmail(context.Background(), "missing@example.com")
	require.NoError(t, err, "404 is a valid 'not found' result")
	assert.Nil(t, user)

	user, err = users.FindByEmail(context.Background(), "broken@example.com")
	assert.Nil(t, user)
	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestCreateWithEmailSendsPlainText(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "newuser@example.com", string(body))
		_, _ = w.Write([]byte(`{"id":2,"email":"newuser@example.com"}`))
	})

	user, err := api.NewUserClient(c).CreateWithEmail(context.Background(), "newuser@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.ID)
}

func TestGetUserBudget(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/budgets/user", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("userId"))
		if q.Get("month") == "5" {
			_, _ = w.Write([]byte(`{"id":7,"amount":1000,"remaining":500,"month":5,"year":2025,"userId":1}`))
			return
		}
		_, _ = w.Write([]byte(`null`))
	})
	budgets := api.NewBudgetClient(c)

	budget, err := budgets.GetUserBudget(context.Background(), 1, 5, 2025)
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.Equal(t, int64(7), budget.ID)
	assert.True(t, budget.Amount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, budget.Remaining.Equal(decimal.NewFromInt(500)))

	budget, err = budgets.GetUserBudget(context.Background(), 1, 6, 2025)
	require.NoError(t, err)
	assert.Nil(t, budget)
}

func TestUpdateAndDeleteBudgetPaths(t *testing.T) {
	var seen []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			var b entity.Budget
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&b))
			assert.True(t, b.Amount.Equal(decimal.NewFromInt(1500)))
			_ = json.NewEncoder(w).Encode(b)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	budgets := api.NewBudgetClient(c)

	updated, err := budgets.UpdateBudget(context.Background(), 7, entity.Budget{ID: 7, Amount: decimal.NewFromInt(1500), Month: 5, Year: 2025, UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Month)
	require.NoError(t, budgets.DeleteBudget(context.Background(), 7))

	assert.Equal(t, []string{"PUT /api/budgets/7", "DELETE /api/budgets/7"}, seen)
}

func TestFilterExpensesEncodesOnlySetFields(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/filter", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("userId"))
		assert.Equal(t, "100", q.Get("minAmount"))
		assert.Equal(t, "3", q.Get("categoryId"))
		assert.False(t, q.Has("maxAmount"))
		assert.False(t, q.Has("startDate"))
		_, _ = w.Write([]byte(`[{"id":2,"title":"Rent","amount":1200,"date":"2024-03-01","categoryId":3,"userId":1}]`))
	})

	minAmount := decimal.NewFromInt(100)
	expenses, err := api.NewExpenseClient(c).FilterExpenses(context.Background(), entity.ExpenseFilter{
		UserID:     1,
		MinAmount:  &minAmount,
		CategoryID: ptr(int64(3)),
	})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Rent", expenses[0].Title)
	assert.True(t, expenses[0].Amount.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, int64(3), *expenses[0].CategoryID)
}

func TestCreateExpenseSendsNumericAmount(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, 50.75, raw["amount"])
		assert.NotContains(t, raw, "id")
		raw["id"] = 10
		_ = json.NewEncoder(w).Encode(raw)
	})

	created, err := api.NewExpenseClient(c).CreateExpense(context.Background(), entity.Expense{
		Title:  "Lunch",
		Amount: decimal.RequireFromString("50.75"),
		Date:   "2024-03-02",
		UserID: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, int64(10), *created.ID)
}

func TestChartAndDailyEndpoints(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("startDate"))
		switch r.URL.Path {
		case "/api/expenses/chart-data":
			_, _ = w.Write([]byte(`[{"categoryName":"Food","totalAmount":80.5,"expenseCount":5,"expenses":[]}]`))
		case "/api/expenses/daily-overview":
			_, _ = w.Write([]byte(`[{"date":"2024-01-02","totalAmount":12,"expenseDetails":[{"title":"Coffee","amount":12,"categoryName":"Food"}]}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	expenses := api.NewExpenseClient(c)
	filter := entity.DateRangeFilter{UserID: 1, StartDate: "2024-01-01"}

	chart, err := expenses.CategoryChartData(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, chart, 1)
	assert.Equal(t, 5, chart[0].ExpenseCount)

	days, err := expenses.DailyOverview(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Coffee", days[0].ExpenseDetails[0].Title)
}

func TestSendReportAcceptsPlainTextAndJSONString(t *testing.T) {
	plain := true
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req entity.EmailRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test@example.com", req.Email)
		if plain {
			_, _ = w.Write([]byte("Report sent"))
			return
		}
		_, _ = w.Write([]byte(`"Report queued"`))
	})
	emails := api.NewEmailClient(c)
	req := entity.EmailRequest{Email: "test@example.com", UserID: 1, Month: 5, Year: 2025}

	msg, err := emails.SendReport(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Report sent", msg)

	plain = false
	msg, err = emails.SendReport(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Report queued", msg)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c, err := api.NewClient(server.URL)
	require.NoError(t, err)

	_, err = api.NewCategoryClient(c).ListCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET categories")
	assert.True(t, api.IsRetryable(err))
}
