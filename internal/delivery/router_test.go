package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gabinork/Gabi-Nork-Tech-2/internal/domain"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/middleware"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/repository"
	"github.com/gabinork/Gabi-Nork-Tech-2/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCollaborator struct{}

func (echoCollaborator) Reply(_ context.Context, _ []domain.ChatTurn, message string) (string, error) {
	return "You said: " + message, nil
}

type envelope struct {
	Status  string          `json:"Status"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	catalog := usecase.NewCatalogUseCase(repository.NewStaticProductRepository(logger), logger)
	carts := usecase.NewCartUseCase(logger)
	sessions := usecase.NewSessionUseCase(repository.NewMemoryKeyValueStorage(), logger)
	accounts, err := usecase.NewAccountUseCase(sessions, "admin@gabinork.com", "admin123", logger)
	require.NoError(t, err)
	orders := repository.NewMemoryOrderRepository(logger)

	router := NewRouter(UseCases{
		Catalog:  catalog,
		Carts:    carts,
		Sessions: sessions,
		Accounts: accounts,
		Checkout: usecase.NewCheckoutUseCase(carts, orders, &nopPublisher{}, 0, logger),
		Tracking: usecase.NewTrackingUseCase(orders, logger),
		Chat:     usecase.NewChatUseCase(echoCollaborator{}, time.Second, logger),
	}, logger)
	return &testServer{t: t, router: router}
}

type nopPublisher struct{}

func (*nopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error { return nil }

func (s *testServer) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ClientIDHeader, "client-1")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Success", env.Status)
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)

	type listing struct {
		Products []productView `json:"products"`
		Count    int           `json:"count"`
	}

	t.Run("default listing", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/products", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[listing](t, env.Data)
		assert.Equal(t, 8, got.Count)
		assert.Equal(t, "₦1,200,000", got.Products[0].PriceDisplay)
	})

	t.Run("filtered listing", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/products?cat=Audio,Accessories&max_price=400000&q=o", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[listing](t, env.Data)
		var ids []string
		for _, p := range got.Products {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{"3", "6", "7"}, ids)
	})

	t.Run("bad parameters", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/products?cat=Toasters", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Fail", env.Status)

		w, _ = s.do(http.MethodGet, "/products?max_price=cheap", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("suggestions", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/products/suggestions?q=pro", nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]productView](t, env.Data)
		require.Len(t, got, 2)
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "3", got[1].ID)
	})

	t.Run("by id", func(t *testing.T) {
		w, env := s.do(http.MethodGet, "/products/4", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Chronos Smartwatch 4", decode[productView](t, env.Data).Name)

		w, _ = s.do(http.MethodGet, "/products/99", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("categories", func(t *testing.T) {
		_, env := s.do(http.MethodGet, "/categories", nil)
		assert.Len(t, decode[[]string](t, env.Data), 5)
	})
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodPost, "/cart/items", gin.H{"product_id": "6"})
	_, env = s.do(http.MethodPost, "/cart/items", gin.H{"product_id": "6"})
	cart := decode[cartView](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, cart.IsOpen)

	w, env := s.do(http.MethodPatch, "/cart/items/6", gin.H{"quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)
	cart = decode[cartView](t, env.Data)
	assert.Equal(t, int64(45000), cart.Amount)
	assert.Equal(t, "₦45,000", cart.AmountDisplay)
	assert.Equal(t, 1, cart.ItemCount)

	w, _ = s.do(http.MethodPatch, "/cart/items/6", `{"quantity":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, env = s.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, 1, decode[cartView](t, env.Data).Items[0].Quantity, "rejected update leaves state unchanged")

	w, _ = s.do(http.MethodPost, "/cart/items", gin.H{"product_id": "404"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = s.do(http.MethodPost, "/cart/close", nil)
	assert.False(t, decode[cartView](t, env.Data).IsOpen)
	_, env = s.do(http.MethodPost, "/cart/items", gin.H{"product_id": "3", "open_cart": false})
	cart = decode[cartView](t, env.Data)
	assert.False(t, cart.IsOpen, "buy now leaves the cart view closed")
	assert.Equal(t, 2, cart.DistinctItems)

	_, env = s.do(http.MethodPost, "/cart/toggle", nil)
	assert.True(t, decode[cartView](t, env.Data).IsOpen)
	_, env = s.do(http.MethodPost, "/cart/open", nil)
	assert.True(t, decode[cartView](t, env.Data).IsOpen)

	_, env = s.do(http.MethodDelete, "/cart/items/3", nil)
	assert.Len(t, decode[cartView](t, env.Data).Items, 1)

	_, env = s.do(http.MethodDelete, "/cart", nil)
	assert.Empty(t, decode[cartView](t, env.Data).Items)
}

func TestClientIDIsMinted(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.ClientIDHeader))
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(http.MethodPost, "/auth/login", gin.H{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	identity := decode[domain.Identity](t, env.Data)
	assert.Equal(t, "Emmanuel Doe", identity.Name)
	assert.Contains(t, identity.Avatar, "name=Emmanuel%20Doe")

	w, env = s.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity.ID, decode[domain.Identity](t, env.Data).ID)

	w, _ = s.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/auth/register", gin.H{"name": "Ada", "email": "ada@example.com", "password": "Secret123", "confirm_password": "Secret123"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, env = s.do(http.MethodPost, "/auth/register", gin.H{"name": "Ada", "email": "ada@example.com", "password": "Secret123", "confirm_password": "Other123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "passwords do not match")

	w, _ = s.do(http.MethodPost, "/admin/login", gin.H{"email": "admin@gabinork.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, env = s.do(http.MethodPost, "/admin/login", gin.H{"email": "admin@gabinork.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.AdminDisplayName, decode[domain.Identity](t, env.Data).Name)
}

func TestCheckoutAndOrderRoutes(t *testing.T) {
	s := newTestServer(t)
	shipping := gin.H{
		"first_name": "Ada", "last_name": "Obi", "email": "ada@example.com",
		"address": "12 Marina Road", "city": "Lagos", "state": "Lagos", "phone": "08030000000",
	}

	_, env := s.do(http.MethodGet, "/checkout", nil)
	view := decode[checkoutView](t, env.Data)
	assert.Equal(t, domain.StepShipping, view.Step)
	assert.True(t, view.CartEmpty)

	w, _ := s.do(http.MethodPost, "/checkout/shipping", shipping)
	assert.Equal(t, http.StatusConflict, w.Code, "empty cart")

	s.do(http.MethodPost, "/cart/items", gin.H{"product_id": "6"})

	bad := gin.H{}
	for k, v := range shipping {
		bad[k] = v
	}
	bad["email"] = "nope"
	w, _ = s.do(http.MethodPost, "/checkout/shipping", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPost, "/checkout/payment", gin.H{"card_number": "4242424242424242", "expiry": "12/27", "cvv": "123"})
	assert.Equal(t, http.StatusConflict, w.Code, "payment before shipping")

	w, env = s.do(http.MethodPost, "/checkout/shipping", shipping)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StepPayment, decode[checkoutView](t, env.Data).Step)

	w, _ = s.do(http.MethodPost, "/checkout/payment", gin.H{"card_number": "1234", "expiry": "12/27", "cvv": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPost, "/checkout/payment", gin.H{"card_number": "4242424242424242", "expiry": "12/27", "cvv": "123"})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decode[orderView](t, env.Data)
	assert.Regexp(t, `^GB-\d{4}$`, order.ID)
	assert.Equal(t, "₦45,000", order.TotalDisplay)

	_, env = s.do(http.MethodGet, "/cart", nil)
	assert.Empty(t, decode[cartView](t, env.Data).Items)

	_, env = s.do(http.MethodGet, "/checkout", nil)
	view = decode[checkoutView](t, env.Data)
	assert.Equal(t, domain.StepConfirmation, view.Step)
	assert.False(t, view.CartEmpty)

	_, env = s.do(http.MethodGet, "/orders", nil)
	orders := decode[[]orderView](t, env.Data)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/orders/track/%s", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	tracking := decode[domain.TrackingResult](t, env.Data)
	assert.Equal(t, domain.StatusPlaced, tracking.Status)
	assert.Equal(t, 15, tracking.Progress)

	w, env = s.do(http.MethodGet, "/orders/track/GB", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid Order ID (e.g., GB-8492)", env.Message)

	_, env = s.do(http.MethodPost, "/checkout/reset", nil)
	assert.Equal(t, domain.StepShipping, decode[checkoutView](t, env.Data).Step)
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(http.MethodGet, "/chat", nil)
	turns := decode[[]domain.ChatTurn](t, env.Data)
	require.Len(t, turns, 1)
	assert.Equal(t, usecase.ChatGreeting, turns[0].Text)

	w, env := s.do(http.MethodPost, "/chat/messages", gin.H{"text": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "You said: hi", decode[domain.ChatTurn](t, env.Data).Text)

	w, _ = s.do(http.MethodPost, "/chat/messages", gin.H{"text": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = s.do(http.MethodDelete, "/chat", nil)
	assert.Len(t, decode[[]domain.ChatTurn](t, env.Data), 1)
}

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", domain.ErrProductNotFound), http.StatusNotFound},
		{domain.ErrChatBusy, http.StatusConflict},
		{domain.ErrCartEmpty, http.StatusConflict},
		{fmt.Errorf("x: %w", domain.ErrInvalidCheckoutStep), http.StatusConflict},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidOrderID, http.StatusBadRequest},
		{errors.New("invalid card number: must be 16 digits"), http.StatusBadRequest},
		{errors.New("order GB-1 already exists"), http.StatusConflict},
		{fmt.Errorf("payment cancelled: %w", context.DeadlineExceeded), http.StatusRequestTimeout},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mapErrorToStatus(tt.err), tt.err.Error())
	}
}
