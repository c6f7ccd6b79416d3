package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rishabhcod/event-registration-system2/database"
	"github.com/rishabhcod/event-registration-system2/handlers"
	"github.com/rishabhcod/event-registration-system2/middleware"
	"github.com/rishabhcod/event-registration-system2/model"
	"github.com/rishabhcod/event-registration-system2/service"
)

type Test struct {
	description  string
	method       string
	route        string
	token        string
	bodyinput    []byte
	expectedCode int
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTestAppWithStore(t, database.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestAppWithStore(t *testing.T, store database.EventStore, log *slog.Logger) *fiber.App {
	t.Helper()
	auth, err := service.NewAuthService(service.AuthConfig{
		Username:   "fake_admin",
		Password:   "admin",
		Secret:     "test-sign",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	h := handlers.New(
		service.NewRegistrationService(store, log),
		service.NewAdminService(store, log),
		auth,
		log)

	app := fiber.New()
	SetupRoutes(app, h, middleware.Authorize(auth))
	return app
}

func do(t *testing.T, app *fiber.App, method, route, token string, body []byte) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, route, bytes.NewBuffer(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, resBody
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, body := do(t, app, "POST", "/api/admin/login", "",
		[]byte(`{"username":"fake_admin","password":"admin"}`))
	require.Equal(t, http.StatusOK, code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestLogin(t *testing.T) {
	tests := []Test{
		{
			description:  "login anonymous",
			method:       "POST",
			route:        "/api/admin/login",
			bodyinput:    nil,
			expectedCode: 400,
		},
		{
			description:  "missing password",
			method:       "POST",
			route:        "/api/admin/login",
			bodyinput:    []byte(`{"username":"fake_admin"}`),
			expectedCode: 400,
		},
		{
			description:  "wrong password",
			method:       "POST",
			route:        "/api/admin/login",
			bodyinput:    []byte(`{"username":"fake_admin","password":"guess"}`),
			expectedCode: 401,
		},
		{
			description:  "admin login",
			method:       "POST",
			route:        "/api/admin/login",
			bodyinput:    []byte(`{"username":"fake_admin","password":"admin"}`),
			expectedCode: 200,
		}}

	app := newTestApp(t)
	for _, test := range tests {
		code, _ := do(t, app, test.method, test.route, test.token, test.bodyinput)
		assert.Equalf(t, test.expectedCode, code, test.description)
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, username string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, service.AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)
	expired := signToken(t, jwt.SigningMethodHS256, "test-sign", "fake_admin", time.Now().Add(-time.Minute))
	hs512 := signToken(t, jwt.SigningMethodHS512, "test-sign", "fake_admin", time.Now().Add(time.Hour))
	otherUser := signToken(t, jwt.SigningMethodHS256, "test-sign", "mallory", time.Now().Add(time.Hour))
	valid := signToken(t, jwt.SigningMethodHS256, "test-sign", "fake_admin", time.Now().Add(time.Hour))

	tests := []Test{
		{"create event without token", "POST", "/api/events", "", []byte(`{"title":"x"}`), 401},
		{"create event with bad token", "POST", "/api/events", "garbage", []byte(`{"title":"x"}`), 401},
		{"tampered token", "GET", "/api/admin/registrations", token[:len(token)-5] + "AAAAA", nil, 401},
		{"list registrations without token", "GET", "/api/admin/registrations", "", nil, 401},
		{"delete registration without token", "DELETE", "/api/admin/registrations/abc", "", nil, 401},
		{"expired token", "GET", "/api/admin/registrations", expired, nil, 401},
		{"HS512 token", "GET", "/api/admin/registrations", hs512, nil, 401},
		{"token for another user", "GET", "/api/admin/registrations", otherUser, nil, 401},
		{"hand signed HS256 token", "GET", "/api/admin/registrations", valid, nil, 200},
		{"list registrations with token", "GET", "/api/admin/registrations", token, nil, 200},
		{"delete unknown registration", "DELETE", "/api/admin/registrations/abc", token, nil, 404},
	}
	for _, test := range tests {
		code, _ := do(t, app, test.method, test.route, test.token, test.bodyinput)
		assert.Equalf(t, test.expectedCode, code, test.description)
	}
}

func TestUnauthorizedResponse(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, "GET", "/api/admin/registrations", "", nil)
	assert.Equal(t, 401, code)
	assert.JSONEq(t, `{"status":"error","message":"unauthorized","data":null}`, string(body))
}

type brokenStore struct {
	database.EventStore
}

func (brokenStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return nil, errors.New("secret-internal-detail")
}

func TestStoreFailureIsLoggedNotReturned(t *testing.T) {
	logs := new(bytes.Buffer)
	app := newTestAppWithStore(t, brokenStore{}, slog.New(slog.NewTextHandler(logs, nil)))

	code, body := do(t, app, "GET", "/api/events", "", nil)
	assert.Equal(t, 500, code)
	assert.JSONEq(t, `{"status":"error","message":"Failed to fetch events","data":null}`, string(body))
	assert.NotContains(t, string(body), "secret-internal-detail")
	assert.Contains(t, logs.String(), "secret-internal-detail")

	token := login(t, app)
	code, body = do(t, app, "GET", "/api/admin/registrations", token, nil)
	assert.Equal(t, 500, code)
	assert.NotContains(t, string(body), "secret-internal-detail")
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, "GET", "/api/health", "", nil)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	code, body = do(t, app, "GET", "/api/events", "", nil)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `[]`, string(body))

	code, _ = do(t, app, "GET", "/api/events/000000000000000000000000", "", nil)
	assert.Equal(t, 404, code)

	code, _ = do(t, app, "POST", "/api/events/000000000000000000000000/register", "",
		[]byte(`{"name":"A","email":"a@x.com"}`))
	assert.Equal(t, 404, code)
}

func TestCreateEventValidation(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	tests := []Test{
		{"missing title", "POST", "/api/events", token, []byte(`{"totalSeats":5}`), 400},
		{"bad date", "POST", "/api/events", token, []byte(`{"title":"x","date":"someday"}`), 400},
		{"malformed json", "POST", "/api/events", token, []byte(`{"title":`), 400},
		{"non numeric seats", "POST", "/api/events", token, []byte(`{"title":"x","totalSeats":"many"}`), 200},
	}
	for _, test := range tests {
		code, _ := do(t, app, test.method, test.route, test.token, test.bodyinput)
		assert.Equalf(t, test.expectedCode, code, test.description)
	}
}

func TestCreateEventWithoutDate(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	code, body := do(t, app, "POST", "/api/events", token, []byte(`{"title":"Someday","totalSeats":2}`))
	require.Equal(t, 200, code)
	var created struct {
		Event map[string]interface{} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	date, ok := created.Event["date"]
	assert.True(t, ok)
	assert.Nil(t, date)

	code, body = do(t, app, "POST", "/api/events/"+created.Event["_id"].(string)+"/register", "",
		[]byte(`{"name":"A","email":"a@x.com"}`))
	require.Equal(t, 200, code)
	var registered struct {
		Event map[string]interface{} `json:"event"`
	}
	require.NoError(t, json.Unmarshal(body, &registered))
	assert.Nil(t, registered.Event["date"])
}

type eventResponse struct {
	Id             string `json:"_id"`
	Title          string `json:"title"`
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
	Registrations  []struct {
		TicketId string `json:"ticketId"`
	} `json:"registrations"`
}

func getEvent(t *testing.T, app *fiber.App, id string) eventResponse {
	t.Helper()
	code, body := do(t, app, "GET", "/api/events/"+id, "", nil)
	require.Equal(t, 200, code)
	var event eventResponse
	require.NoError(t, json.Unmarshal(body, &event))
	return event
}

func TestRegistrationLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	code, body := do(t, app, "POST", "/api/events", token,
		[]byte(`{"title":"Single seat","description":"d","location":"Room 1","date":"2025-09-01T18:00:00Z","totalSeats":1}`))
	require.Equal(t, 200, code)
	var created struct {
		Message string        `json:"message"`
		Event   eventResponse `json:"event"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "Event created", created.Message)
	assert.Equal(t, 1, created.Event.TotalSeats)
	assert.Equal(t, 1, created.Event.AvailableSeats)
	eventId := created.Event.Id

	code, _ = do(t, app, "POST", "/api/events/"+eventId+"/register", "", []byte(`{"name":"A"}`))
	assert.Equal(t, 400, code)

	code, body = do(t, app, "POST", "/api/events/"+eventId+"/register", "",
		[]byte(`{"name":"A","email":"a@x.com"}`))
	require.Equal(t, 200, code)
	var registered struct {
		Message  string `json:"message"`
		TicketId string `json:"ticketId"`
		Event    struct {
			Id       string `json:"id"`
			Title    string `json:"title"`
			Location string `json:"location"`
		} `json:"event"`
		Registration struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			TicketId string `json:"ticketId"`
		} `json:"registration"`
	}
	require.NoError(t, json.Unmarshal(body, &registered))
	assert.Equal(t, "Registered", registered.Message)
	assert.NotEmpty(t, registered.TicketId)
	assert.Equal(t, eventId, registered.Event.Id)
	assert.Equal(t, "Room 1", registered.Event.Location)
	assert.Equal(t, registered.TicketId, registered.Registration.TicketId)
	assert.Equal(t, 0, getEvent(t, app, eventId).AvailableSeats)

	code, _ = do(t, app, "POST", "/api/events/"+eventId+"/register", "",
		[]byte(`{"name":"B","email":"b@x.com"}`))
	assert.Equal(t, 409, code)

	code, body = do(t, app, "GET", "/api/admin/registrations", token, nil)
	require.Equal(t, 200, code)
	var records []struct {
		EventId    string `json:"eventId"`
		EventTitle string `json:"eventTitle"`
		TicketId   string `json:"ticketId"`
	}
	require.NoError(t, json.Unmarshal(body, &records))
	require.Len(t, records, 1)
	assert.Equal(t, eventId, records[0].EventId)
	assert.Equal(t, "Single seat", records[0].EventTitle)
	assert.Equal(t, registered.TicketId, records[0].TicketId)

	code, _ = do(t, app, "DELETE", "/api/admin/registrations/"+registered.TicketId, token, nil)
	assert.Equal(t, 200, code)

	event := getEvent(t, app, eventId)
	assert.Equal(t, 1, event.AvailableSeats)
	assert.Empty(t, event.Registrations)

	code, _ = do(t, app, "DELETE", "/api/admin/registrations/"+registered.TicketId, token, nil)
	assert.Equal(t, 404, code)
}
