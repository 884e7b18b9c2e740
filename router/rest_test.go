package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"skillswap-service/controller"
	"skillswap-service/database"
	"skillswap-service/model"
	"skillswap-service/service"
	"skillswap-service/store"
	"skillswap-service/store/testutil"
	"skillswap-service/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  string          `json:"status"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testApp struct {
	app      *fiber.App
	db       *gorm.DB
	enforcer *casbin.Enforcer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	t.Setenv(utils.AccessKey, "access-secret")
	t.Setenv(utils.RefreshKey, "refresh-secret")

	db := testutil.NewTestDB(t)
	enforcer, err := database.Casbin(db)
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := store.NewUserStore(db)
	listings := store.NewListings(db)
	messages := store.NewMessageStore(db)
	notifications := store.NewNotificationStore(db)
	fanout := service.NewFanout(notifications, messages, nil)

	handler := controller.New(controller.Services{
		Users:         service.NewUserService(users, store.NewSessionStore(client), enforcer, "", nil),
		Messages:      service.NewMessageService(users, messages, fanout),
		Exchanges:     service.NewExchangeService(users, listings, store.NewExchangeStore(db), fanout),
		Notifications: service.NewNotificationService(notifications),
		Offers:        service.NewListingService[model.Offer, *model.Offer](listings.Offers),
		Requests:      service.NewListingService[model.Request, *model.Request](listings.Requests),
	}, nil)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	Rest(app, handler, enforcer)
	return &testApp{app: app, db: db, enforcer: enforcer}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	tokens, err := utils.GenerateTokens(user.ID, false)
	require.NoError(t, err)
	return tokens.Access
}

func idPath(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func TestRest_Accounts(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)

	status, body := a.do(t, http.MethodPost, "/v1/auth/signup", "", fiber.Map{
		"name": "Kiran", "email": "kiran@example.com", "password": "secret123", "location": "Goa",
	})
	req.Equal(http.StatusCreated, status)
	req.Equal("success", body.Status)

	status, body = a.do(t, http.MethodPost, "/v1/auth/signin", "", fiber.Map{
		"email": "kiran@example.com", "password": "nope",
	})
	req.Equal(http.StatusUnauthorized, status)
	req.Equal("Invalid email or password", *body.Message)

	status, _ = a.do(t, http.MethodPost, "/v1/auth/signin", "", fiber.Map{
		"email": "", "password": "secret123",
	})
	req.Equal(http.StatusUnauthorized, status)

	status, body = a.do(t, http.MethodPost, "/v1/auth/signin", "", fiber.Map{
		"email": "kiran@example.com", "password": "secret123",
	})
	req.Equal(http.StatusOK, status)
	var session struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	req.NoError(json.Unmarshal(body.Data, &session))

	status, body = a.do(t, http.MethodGet, "/v1/users/profile", session.Access, nil)
	req.Equal(http.StatusOK, status)
	var profile controller.UserView
	req.NoError(json.Unmarshal(body.Data, &profile))
	req.Equal("kiran@example.com", profile.Email)
	req.Equal(model.DefaultProfilePicture, profile.ProfilePicture)

	status, body = a.do(t, http.MethodPost, "/v1/auth/token/renew", "", fiber.Map{"refresh_token": session.Refresh})
	req.Equal(http.StatusOK, status)
	status, _ = a.do(t, http.MethodPost, "/v1/auth/token/renew", "", fiber.Map{"refresh_token": session.Refresh})
	req.Equal(http.StatusUnauthorized, status)
}

func TestRest_Authentication(t *testing.T) {
	a := newTestApp(t)
	user := testutil.CreateUser(t, a.db, "u1")

	t.Run("should reject requests without a token", func(t *testing.T) {
		status, body := a.do(t, http.MethodGet, "/v1/messages", "", nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "Missing or malformed JWT", *body.Message)
	})

	t.Run("should serve public profiles without a token", func(t *testing.T) {
		status, body := a.do(t, http.MethodGet, idPath("/v1/users/", user.ID), "", nil)
		require.Equal(t, http.StatusOK, status)
		var profile controller.UserView
		require.NoError(t, json.Unmarshal(body.Data, &profile))
		require.Equal(t, "u1", profile.Name)
		require.Empty(t, profile.Email)

		status, _ = a.do(t, http.MethodGet, "/v1/users/profile", "", nil)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("should reject sessions waiting for the second factor", func(t *testing.T) {
		tokens, err := utils.GenerateTokens(user.ID, true)
		require.NoError(t, err)

		status, body := a.do(t, http.MethodGet, "/v1/messages", tokens.Access, nil)
		require.Equal(t, http.StatusBadRequest, status)
		require.Equal(t, "2FA required", *body.Message)
	})

	t.Run("should only let admins list users", func(t *testing.T) {
		token := tokenFor(t, user)

		status, _ := a.do(t, http.MethodGet, "/v1/admin/users", token, nil)
		require.Equal(t, http.StatusForbidden, status)

		_, err := a.enforcer.AddGroupingPolicy(strconv.FormatUint(uint64(user.ID), 10), "admin")
		require.NoError(t, err)

		status, body := a.do(t, http.MethodGet, "/v1/admin/users", token, nil)
		require.Equal(t, http.StatusOK, status)
		var users []controller.UserView
		require.NoError(t, json.Unmarshal(body.Data, &users))
		require.Len(t, users, 1)
	})
}

func TestRest_MessagesAndExchanges(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)
	u1 := testutil.CreateUser(t, a.db, "u1")
	u2 := testutil.CreateUser(t, a.db, "u2")
	offer := testutil.CreateOffer(t, a.db, u1.ID, "Spanish")
	t1, t2 := tokenFor(t, u1), tokenFor(t, u2)

	status, body := a.do(t, http.MethodPost, "/v1/messages", t1, fiber.Map{"recipient_id": u2.ID, "content": "Hi"})
	req.Equal(http.StatusCreated, status)
	var sent controller.MessageView
	req.NoError(json.Unmarshal(body.Data, &sent))
	req.Equal("u1", sent.Sender.Name)

	status, body = a.do(t, http.MethodPost, "/v1/messages", t1, fiber.Map{"recipient_id": u1.ID, "content": "Hi"})
	req.Equal(http.StatusBadRequest, status)
	req.Equal("Cannot send message to yourself.", *body.Message)

	status, body = a.do(t, http.MethodGet, idPath("/v1/messages/conversation/", u1.ID), t2, nil)
	req.Equal(http.StatusOK, status)
	var conversation []controller.MessageView
	req.NoError(json.Unmarshal(body.Data, &conversation))
	req.Len(conversation, 1)
	req.True(conversation[0].Read)

	status, body = a.do(t, http.MethodPost, "/v1/exchanges", t1, fiber.Map{
		"accepter_id":          u2.ID,
		"offered_skill_ref_id": offer.ID,
		"proposed_terms":       "Swap Spanish for guitar",
	})
	req.Equal(http.StatusCreated, status)
	var exchange controller.ExchangeView
	req.NoError(json.Unmarshal(body.Data, &exchange))
	req.Equal(model.ExchangePending, exchange.Status)
	req.Equal(offer.ID, exchange.OfferedSkill.ID)
	req.Nil(exchange.RequestedSkill)

	status, body = a.do(t, http.MethodPost, "/v1/exchanges", t1, fiber.Map{"accepter_id": u2.ID, "proposed_terms": "x"})
	req.Equal(http.StatusBadRequest, status)

	exchangePath := idPath("/v1/exchanges/", exchange.ID)
	status, _ = a.do(t, http.MethodPut, exchangePath, t1, fiber.Map{"status": "accepted"})
	req.Equal(http.StatusUnauthorized, status)
	status, _ = a.do(t, http.MethodPut, exchangePath, t2, fiber.Map{"status": "finished"})
	req.Equal(http.StatusBadRequest, status)
	status, _ = a.do(t, http.MethodPut, "/v1/exchanges/999", t2, fiber.Map{"status": "accepted"})
	req.Equal(http.StatusNotFound, status)

	status, body = a.do(t, http.MethodPut, exchangePath, t2, fiber.Map{"status": "accepted"})
	req.Equal(http.StatusOK, status)
	req.NoError(json.Unmarshal(body.Data, &exchange))
	req.Equal(model.ExchangeAccepted, exchange.Status)

	status, body = a.do(t, http.MethodGet, "/v1/exchanges", t2, nil)
	req.Equal(http.StatusOK, status)
	var list []controller.ExchangeView
	req.NoError(json.Unmarshal(body.Data, &list))
	req.Len(list, 1)
	req.Equal("u1", list[0].Proposer.Name)
	req.Equal("Spanish", list[0].OfferedSkill.Title)

	status, body = a.do(t, http.MethodGet, "/v1/notifications", t2, nil)
	req.Equal(http.StatusOK, status)
	var inbox []controller.NotificationView
	req.NoError(json.Unmarshal(body.Data, &inbox))
	req.Len(inbox, 2)
	req.Equal(model.NotificationProposal, inbox[0].Type)
	req.Equal(model.NotificationNewMessage, inbox[1].Type)

	status, _ = a.do(t, http.MethodPut, idPath("/v1/notifications/", inbox[0].ID)+"/read", t1, nil)
	req.Equal(http.StatusUnauthorized, status)
	status, body = a.do(t, http.MethodPut, idPath("/v1/notifications/", inbox[0].ID)+"/read", t2, nil)
	req.Equal(http.StatusOK, status)
	var read controller.NotificationView
	req.NoError(json.Unmarshal(body.Data, &read))
	req.True(read.Read)

	status, body = a.do(t, http.MethodGet, "/v1/notifications", t1, nil)
	req.Equal(http.StatusOK, status)
	req.NoError(json.Unmarshal(body.Data, &inbox))
	req.Len(inbox, 1)
	req.Equal("Exchange with u2 updated to: ACCEPTED", inbox[0].Message)
}

func TestRest_Listings(t *testing.T) {
	req := require.New(t)
	a := newTestApp(t)
	owner := testutil.CreateUser(t, a.db, "owner")
	other := testutil.CreateUser(t, a.db, "other")

	status, body := a.do(t, http.MethodPost, "/v1/requests", tokenFor(t, owner), fiber.Map{
		"title": "Guitar basics", "description": "Chords", "category": "Arts & Crafts",
		"skills": []string{"Guitar"}, "location": "Goa",
	})
	req.Equal(http.StatusCreated, status)
	var created controller.ListingView
	req.NoError(json.Unmarshal(body.Data, &created))
	req.Equal(model.RequestOpen, created.Status)

	status, body = a.do(t, http.MethodGet, "/v1/requests", "", nil)
	req.Equal(http.StatusOK, status)
	var open []controller.ListingView
	req.NoError(json.Unmarshal(body.Data, &open))
	req.Len(open, 1)
	req.Equal("owner", open[0].Owner.Name)

	status, _ = a.do(t, http.MethodDelete, idPath("/v1/requests/", created.ID), tokenFor(t, other), nil)
	req.Equal(http.StatusUnauthorized, status)
	status, _ = a.do(t, http.MethodDelete, idPath("/v1/requests/", created.ID), tokenFor(t, owner), nil)
	req.Equal(http.StatusOK, status)
	status, _ = a.do(t, http.MethodGet, idPath("/v1/requests/", created.ID), "", nil)
	req.Equal(http.StatusNotFound, status)
}
