package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"private-chef-api/ai"
	"private-chef-api/checkout"
	"private-chef-api/console"
	"private-chef-api/handlers"
	"private-chef-api/identity"
	"private-chef-api/metrics"
	"private-chef-api/models"
	"private-chef-api/payment"
	"private-chef-api/portfolio"
	"private-chef-api/routes"
	"private-chef-api/store"
)

const adminPassword = "director-pass"

type api struct {
	t      *testing.T
	router *gin.Engine
	store  *store.Store
}

// newAPI wires the full router over an in-memory store. The AI gateway has
// no model, so every generation fails and chef search falls back.
func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWithSearch(t, nil)
}

type stubSearch []models.Chef

func (s stubSearch) SearchChefs(context.Context, string, string) []models.Chef {
	return append([]models.Chef(nil), s...)
}

// newAPIWithSearch swaps chef discovery for search when it is non-nil.
func newAPIWithSearch(t *testing.T, search handlers.ChefSearcher) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seed := store.MustLoadSeed()
	st := store.New(store.NewMemoryKV(), seed)
	require.NoError(t, st.CacheChefs(context.Background(), seed.Chefs()))
	ids := identity.NewService(st, adminPassword)
	require.NoError(t, ids.EnsureAdmin(context.Background()))

	collector := metrics.NewCollector()
	gateway := ai.NewGateway(nil, seed.Chefs(), ai.WithMetrics(collector))
	co := checkout.NewService(st, payment.NewSandboxProcessor(), gateway, checkout.WithMetrics(collector))
	if search == nil {
		search = gateway
	}
	h := handlers.New(st, ids, co, portfolio.NewService(st, gateway), console.New(st, gateway), search)

	r := gin.New()
	routes.SetupRoutes(r, h, ids, collector.Handler())
	return &api{t: t, router: r, store: st}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (a *api) register(name, email string, role models.UserRole) (string, map[string]any) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123", "role": role,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(a.t, rec)
	return body["token"].(string), body
}

func (a *api) adminToken() string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": identity.AdminEmail, "password": adminPassword})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode(a.t, rec)["token"].(string)
}

// book walks the checkout for Marco Rossi's tasting menu and pays.
func (a *api) book(token, paymentMethod string) *httptest.ResponseRecorder {
	a.t.Helper()
	steps := []struct {
		path string
		body any
	}{
		{"/api/flow/chef", gin.H{"chefId": "chef-fallback-1"}},
		{"/api/flow/details", gin.H{"date": "2026-04-01", "time": "19:30", "guests": 6}},
		{"/api/flow/menu", gin.H{"menuId": "menu-fallback-1"}},
		{"/api/flow/proceed", nil},
	}
	for _, s := range steps {
		rec := a.do(http.MethodPost, s.path, token, s.body)
		require.Equal(a.t, http.StatusOK, rec.Code, "%s: %s", s.path, rec.Body.String())
	}
	return a.do(http.MethodPost, "/api/flow/pay", token, gin.H{"paymentMethod": paymentMethod})
}

func TestRegisterAndProfile(t *testing.T) {
	a := newAPI(t)
	token, body := a.register("Grace Hopper", "grace@example.com", models.RoleDiner)

	flow := body["flow"].(map[string]any)
	assert.Equal(t, "HOME", flow["view"])
	assert.NotContains(t, body["user"], "passwordHash")

	rec := a.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["user"].(map[string]any)
	assert.Equal(t, "grace@example.com", user["email"])

	rec = a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Other", "email": "grace@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_UnknownAndWrongPassword(t *testing.T) {
	a := newAPI(t)
	a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "identity not recognized", decode(t, rec)["error"])

	rec = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "grace@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": identity.AdminEmail})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")
}

func TestLogout_EndsSession(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckout_PayConfirmsBooking(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.book(token, "pm_card_visa")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode(t, rec)
	booking := body["booking"].(map[string]any)
	assert.Equal(t, 510.0, booking["totalPrice"])
	assert.Equal(t, "CONFIRMED", booking["status"])
	assert.Equal(t, "Your booking is confirmed.", body["confirmation"])
	assert.Equal(t, "BOOKING_SUCCESS", body["flow"].(map[string]any)["view"])

	rec = a.do(http.MethodGet, "/api/diner/bookings", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1.0, decode(t, rec)["count"])

	chefBookings := a.store.BookingsByChefID(context.Background(), "chef-fallback-1")
	require.Len(t, chefBookings, 1)
	assert.Equal(t, 510.0, chefBookings[0].TotalPrice)
}

func TestCheckout_DeclineStaysOnPayment(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.book(token, "pm_card_chargeDeclined")
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Your card was declined.", body["error"])
	assert.Equal(t, "PAYMENT", body["flow"].(map[string]any)["view"])
	assert.Empty(t, a.store.Bookings.GetAll(context.Background()))
}

func TestCheckout_InvalidStep(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.do(http.MethodPost, "/api/flow/proceed", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "HOME", decode(t, rec)["flow"].(map[string]any)["view"])

	rec = a.do(http.MethodPost, "/api/flow/chef", token, gin.H{"chefId": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_FallsBackWithoutModel(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodGet, "/api/chefs/search?location=Paris", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	chefs := decode(t, rec)["chefs"].([]any)
	require.NotEmpty(t, chefs)
	assert.Equal(t, "Marco Rossi", chefs[0].(map[string]any)["name"])

	cached := a.store.CachedChefs(context.Background())
	assert.Len(t, cached, 1, "results merge into the cache by id")
}

func TestSearch_CollapsesRepeatedIDs(t *testing.T) {
	aiko := models.Chef{ID: "chef-aiko", Name: "Aiko Tanaka", Cuisines: []string{"Japanese"}}
	a := newAPIWithSearch(t, stubSearch{aiko, aiko, {ID: "chef-fallback-1", Name: "Renamed"}})

	rec := a.do(http.MethodGet, "/api/chefs/search?cuisine=Japanese", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	chefs := decode(t, rec)["chefs"].([]any)
	require.Len(t, chefs, 2)
	assert.Equal(t, "Aiko Tanaka", chefs[0].(map[string]any)["name"])
	assert.Equal(t, "Marco Rossi", chefs[1].(map[string]any)["name"])

	cached := a.store.CachedChefs(context.Background())
	require.Len(t, cached, 2)
	assert.Equal(t, "chef-aiko", cached[1].ID)
}

func TestRoleGating(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)

	rec := a.do(http.MethodGet, "/api/admin/overview", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodGet, "/api/admin/overview", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_BookingStatus(t *testing.T) {
	a := newAPI(t)
	diner, _ := a.register("Grace", "grace@example.com", models.RoleDiner)
	rec := a.book(diner, "pm_card_visa")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["booking"].(map[string]any)["id"].(string)

	admin := a.adminToken()

	rec = a.do(http.MethodPut, "/api/admin/bookings/"+id+"/status", admin, gin.H{"status": "COMPLETED"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "CONFIRMED", decode(t, rec)["previous_status"])

	rec = a.do(http.MethodPut, "/api/admin/bookings/"+id+"/status", admin, gin.H{"status": "PENDING"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "COMPLETED", body["current_status"])
	assert.Equal(t, []any{"REFUNDED"}, body["valid_next_states"])

	rec = a.do(http.MethodPut, "/api/admin/bookings/"+id+"/status", admin, gin.H{"status": "PENDING", "force": true, "note": "data fix"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(http.MethodGet, "/api/admin/bookings/"+id+"/history", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode(t, rec)["history"].([]any)
	require.Len(t, history, 2)
	assert.Equal(t, "[override] data fix", history[1].(map[string]any)["note"])
}

func TestDiner_CancelOthersBookingForbidden(t *testing.T) {
	a := newAPI(t)
	grace, _ := a.register("Grace", "grace@example.com", models.RoleDiner)
	rec := a.book(grace, "pm_card_visa")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode(t, rec)["booking"].(map[string]any)["id"].(string)

	alan, _ := a.register("Alan", "alan@example.com", models.RoleDiner)
	rec = a.do(http.MethodPut, "/api/diner/bookings/"+id+"/cancel", alan, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPut, "/api/diner/bookings/"+id+"/cancel", grace, gin.H{"reason": "moved abroad"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CANCELLED", decode(t, rec)["current_status"])
}

func TestChef_ProvisionAndMenus(t *testing.T) {
	a := newAPI(t)
	token, body := a.register("Nadia Ferreira", "nadia@example.com", models.RoleChef)

	chef := body["chef"].(map[string]any)
	assert.Equal(t, "Global", chef["location"])
	assert.Equal(t, "CHEF_DASHBOARD", body["flow"].(map[string]any)["view"])

	rec := a.do(http.MethodPost, "/api/chef/menus", token, gin.H{"name": "Atlantic Coast", "pricePerHead": 120})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	menuID := decode(t, rec)["menu"].(map[string]any)["id"].(string)

	rec = a.do(http.MethodPost, "/api/chef/menus/"+menuID+"/courses", token, gin.H{"name": "Amuse Bouche"})
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode(t, rec)["menu"].(map[string]any)["courseOrder"].([]any)
	assert.Equal(t, "amuse_bouche", order[len(order)-1])

	rec = a.do(http.MethodPost, "/api/chef/menus/"+menuID+"/courses", token, gin.H{"name": "amuse  bouche"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = a.do(http.MethodPost, "/api/chef/menus/"+menuID+"/narrative", token, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "The requested intelligence model is currently unavailable.", decode(t, rec)["error"])

	rec = a.do(http.MethodDelete, "/api/chef/menus/"+menuID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(http.MethodDelete, "/api/chef/menus/"+menuID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_ReportFailureIsLogged(t *testing.T) {
	a := newAPI(t)
	admin := a.adminToken()

	rec := a.do(http.MethodPost, "/api/admin/reports", admin, gin.H{"kind": "FORECAST"})
	require.Equal(t, http.StatusBadGateway, rec.Code)

	rec = a.do(http.MethodGet, "/api/admin/logs", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	logs := decode(t, rec)["logs"].([]any)
	require.GreaterOrEqual(t, len(logs), 2)
	assert.Contains(t, logs[0], "AI ERROR [FORECAST]: The requested intelligence model is currently unavailable.")
	assert.Contains(t, logs[1], "Admin initiating AI synthesis for [FORECAST]...")

	rec = a.do(http.MethodPost, "/api/admin/reports", admin, gin.H{"kind": "HOROSCOPE"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntake_EventLead(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/api/event-leads", "", gin.H{
		"clientName": "Ada", "email": "ada@example.com", "location": "Chelsea",
		"date": "2026-06-01", "guests": 20, "budget": 5000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "NEW", decode(t, rec)["lead"].(map[string]any)["status"])

	rec = a.do(http.MethodPost, "/api/event-leads", "", gin.H{"clientName": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/admin/event-leads", a.adminToken(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, decode(t, rec)["count"])
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)
	token, _ := a.register("Grace", "grace@example.com", models.RoleDiner)
	require.Equal(t, http.StatusCreated, a.book(token, "pm_card_visa").Code)

	rec := a.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `luxeplate_bookings_total{status="CONFIRMED"} 1`)
}

