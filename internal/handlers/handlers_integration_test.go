package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"cramazon/internal/handlers"
	"cramazon/internal/middleware"
	"cramazon/internal/models"
	"cramazon/internal/repositories"
	"cramazon/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int64

// setupApp builds the full application against a fresh in-memory SQLite
// database, wired exactly as in main.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Item{}, &models.Order{}))

	userRepo := repositories.NewGORMUserRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	userService := services.NewUserService(userRepo)
	itemService := services.NewItemService(itemRepo)
	orderService := services.NewOrderService(orderRepo, itemRepo, nil)

	app := fiber.New()
	app.Use(middleware.StorageTimeout(5 * time.Second))

	authRequired := middleware.AuthRequired(authService)
	handlers.NewAuthHandler(authService).RegisterRoutes(app, authRequired)
	handlers.NewUserHandler(userService, authService).RegisterRoutes(app, authRequired)
	handlers.NewItemHandler(itemService).RegisterRoutes(app, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(app, authRequired)

	return app
}

// request performs one JSON request against the app. token may be empty.
func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// registerUser creates an account and returns it with its token.
func registerUser(t *testing.T, app *fiber.App, email, fullName, password string) authResponse {
	t.Helper()

	resp := request(t, app, http.MethodPost, "/users", "", map[string]string{
		"email":    email,
		"fullName": fullName,
		"password": password,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out authResponse
	decode(t, resp, &out)
	assert.NotZero(t, out.User.ID)
	assert.NotEmpty(t, out.Token)
	return out
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestRegisterLoginValidate(t *testing.T) {
	app := setupApp(t)

	reg := registerUser(t, app, "a@x.com", "Account A", "pw1")

	// Duplicate email is a conflict and leaves a single account behind
	resp := request(t, app, http.MethodPost, "/users", "", map[string]string{
		"email":    "a@x.com",
		"fullName": "Impostor",
		"password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var users []models.User
	decode(t, resp, &users)
	assert.Len(t, users, 1)
	assert.Equal(t, "a@x.com", users[0].Email)

	// Login with the registered pair succeeds and the token resolves back
	// to the same account
	resp = request(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "pw1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var login authResponse
	decode(t, resp, &login)
	assert.Equal(t, reg.User.ID, login.User.ID)

	resp = request(t, app, http.MethodGet, "/validate", login.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var validated models.User
	decode(t, resp, &validated)
	assert.Equal(t, reg.User.ID, validated.ID)

	// Wrong password
	resp = request(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Tampered and missing tokens never validate
	resp = request(t, app, http.MethodGet, "/validate", login.Token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/validate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderLifecycle(t *testing.T) {
	app := setupApp(t)

	a := registerUser(t, app, "a@x.com", "Account A", "pw1")

	// Create the item
	resp := request(t, app, http.MethodPost, "/items", a.Token, map[string]interface{}{
		"name":  "Widget",
		"price": 10,
		"stock": 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var widget models.Item
	decode(t, resp, &widget)
	assert.NotZero(t, widget.ID)

	// Creating an item without a token is rejected
	resp = request(t, app, http.MethodPost, "/items", "", map[string]interface{}{
		"name":  "NoAuth",
		"price": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Duplicate item name is a conflict
	resp = request(t, app, http.MethodPost, "/items", a.Token, map[string]interface{}{
		"name":  "Widget",
		"price": 12,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Create the order
	resp = request(t, app, http.MethodPost, "/orders", a.Token, map[string]interface{}{
		"quantity": 2,
		"userId":   a.User.ID,
		"itemId":   widget.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decode(t, resp, &order)
	assert.Equal(t, a.User.ID, order.UserID)

	// Second identical order is a conflict
	resp = request(t, app, http.MethodPost, "/orders", a.Token, map[string]interface{}{
		"quantity": 2,
		"userId":   a.User.ID,
		"itemId":   widget.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Delete the order; the item remains
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), a.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, fmt.Sprintf("/items/%d", widget.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Deleting the same order again is NotFound
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), a.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderOwnership(t *testing.T) {
	app := setupApp(t)

	a := registerUser(t, app, "a@x.com", "Account A", "pw1")
	b := registerUser(t, app, "b@x.com", "Account B", "pw2")

	resp := request(t, app, http.MethodPost, "/items", a.Token, map[string]interface{}{
		"name":  "Widget",
		"price": 10,
		"stock": 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var widget models.Item
	decode(t, resp, &widget)

	resp = request(t, app, http.MethodPost, "/orders", a.Token, map[string]interface{}{
		"quantity": 2,
		"itemId":   widget.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decode(t, resp, &order)

	// B cannot delete or update A's order
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/orders/%d", order.ID), b.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), b.Token, map[string]interface{}{
		"quantity": 99,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The order is unchanged and still A's
	resp = request(t, app, http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Order
	decode(t, resp, &fetched)
	assert.Equal(t, 2, fetched.Quantity)
	assert.Equal(t, a.User.ID, fetched.UserID)

	// B cannot create an order owned by A
	resp = request(t, app, http.MethodPost, "/orders", b.Token, map[string]interface{}{
		"quantity": 1,
		"userId":   a.User.ID,
		"itemId":   widget.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// A updates their own order, keyed by the order's ID
	resp = request(t, app, http.MethodPatch, fmt.Sprintf("/orders/%d", order.ID), a.Token, map[string]interface{}{
		"quantity": 4,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Order
	decode(t, resp, &updated)
	assert.Equal(t, order.ID, updated.ID)
	assert.Equal(t, 4, updated.Quantity)
}

func TestItemPolicies(t *testing.T) {
	app := setupApp(t)

	a := registerUser(t, app, "a@x.com", "Account A", "pw1")
	b := registerUser(t, app, "b@x.com", "Account B", "pw2")

	resp := request(t, app, http.MethodPost, "/items", a.Token, map[string]interface{}{
		"name":  "Widget",
		"price": 10,
		"stock": 5,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var widget models.Item
	decode(t, resp, &widget)

	// Any authenticated caller may update an item
	resp = request(t, app, http.MethodPatch, fmt.Sprintf("/items/%d", widget.ID), b.Token, map[string]interface{}{
		"name":  "Widget",
		"price": 12,
		"stock": 4,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Item
	decode(t, resp, &updated)
	assert.Equal(t, float64(12), updated.Price)

	// Deletion requires owning an order on the item
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/items/%d", widget.ID), b.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodPost, "/orders", a.Token, map[string]interface{}{
		"quantity": 1,
		"itemId":   widget.ID,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/items/%d", widget.ID), a.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The item and the orders referencing it are gone
	resp = request(t, app, http.MethodGet, fmt.Sprintf("/items/%d", widget.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/orders", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decode(t, resp, &orders)
	assert.Empty(t, orders)

	// Validation failures are 422
	resp = request(t, app, http.MethodPost, "/items", a.Token, map[string]interface{}{
		"price": -1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestUserSelfService(t *testing.T) {
	app := setupApp(t)

	a := registerUser(t, app, "a@x.com", "Account A", "pw1")
	b := registerUser(t, app, "b@x.com", "Account B", "pw2")

	// B cannot update or delete A's account
	resp := request(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", a.User.ID), b.Token, map[string]string{
		"fullName": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/users/%d", a.User.ID), b.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// A updates their own name and password
	resp = request(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", a.User.ID), a.Token, map[string]string{
		"fullName": "Account A Renamed",
		"password": "newpw1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	decode(t, resp, &updated)
	assert.Equal(t, "Account A Renamed", updated.FullName)

	// Old password no longer works, new one does
	resp = request(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "pw1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodPost, "/login", "", map[string]string{
		"email":    "a@x.com",
		"password": "newpw1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A cannot take B's email
	resp = request(t, app, http.MethodPatch, fmt.Sprintf("/users/%d", a.User.ID), a.Token, map[string]string{
		"email": "b@x.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A deletes their own account; the token stops resolving
	resp = request(t, app, http.MethodDelete, fmt.Sprintf("/users/%d", a.User.ID), a.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, "/validate", a.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = request(t, app, http.MethodGet, fmt.Sprintf("/users/%d", a.User.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
