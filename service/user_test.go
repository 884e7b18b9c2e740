package service_test

import (
	"context"
	"testing"
	"time"

	"skillswap-service/service"
	"skillswap-service/store"
	"skillswap-service/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type roleRecorder struct {
	grants [][]interface{}
}

func (r *roleRecorder) AddGroupingPolicy(params ...interface{}) (bool, error) {
	r.grants = append(r.grants, params)
	return true, nil
}

func newUserService(t *testing.T) (*service.UserService, *roleRecorder) {
	t.Helper()
	t.Setenv(utils.AccessKey, "access-secret")
	t.Setenv(utils.RefreshKey, "refresh-secret")

	e := newEnv(t)
	client := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	t.Cleanup(func() { _ = client.Close() })
	roles := &roleRecorder{}
	return service.NewUserService(e.users, store.NewSessionStore(client), roles, "", nil), roles
}

var registration = service.RegisterInput{
	Name:     "Meera",
	Email:    "Meera@Example.com",
	Password: "secret123",
	Location: "Jaipur",
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should create the account with a role and a session", func(t *testing.T) {
		req := require.New(t)
		users, roles := newUserService(t)

		session, err := users.Register(ctx, registration)

		req.NoError(err)
		req.Equal("meera@example.com", session.User.Email)
		req.NotEqual("secret123", session.User.Password)
		req.NotEmpty(session.User.OtpSecret)
		req.False(session.OtpPending)
		req.NotEmpty(session.Tokens.Access)
		req.Equal([][]interface{}{{uintString(session.User.ID), "user"}}, roles.grants)

		_, err = users.Register(ctx, registration)
		req.ErrorIs(err, service.ErrValidation)
		req.EqualError(err, "User already exists")
	})

	t.Run("should reject incomplete registrations", func(t *testing.T) {
		users, _ := newUserService(t)
		input := registration
		input.Location = ""

		_, err := users.Register(ctx, input)

		require.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestUserService_Sessions(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	users, _ := newUserService(t)
	registered, err := users.Register(ctx, registration)
	req.NoError(err)

	_, err = users.Authenticate(ctx, "meera@example.com", "wrong")
	req.ErrorIs(err, service.ErrUnauthorized)

	for _, email := range []string{"", "   "} {
		_, err = users.Authenticate(ctx, email, "secret123")
		req.ErrorIs(err, service.ErrUnauthorized, "blank email %q must not match an account", email)
	}

	session, err := users.Authenticate(ctx, " MEERA@example.com", "secret123")
	req.NoError(err)
	req.Equal(registered.User.ID, session.User.ID)

	renewed, err := users.Renew(ctx, session.Tokens.Refresh)
	req.NoError(err)
	req.NotEmpty(renewed.Tokens.Refresh)

	_, err = users.Renew(ctx, session.Tokens.Refresh)
	req.ErrorIs(err, service.ErrUnauthorized, "a refresh token works once")

	_, err = users.Renew(ctx, "not-a-token")
	req.ErrorIs(err, service.ErrUnauthorized)
}

func TestUserService_Otp(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	users, _ := newUserService(t)
	registered, err := users.Register(ctx, registration)
	req.NoError(err)
	id := registered.User.ID

	_, _, err = users.OtpSecret(ctx, id, "wrong")
	req.ErrorIs(err, service.ErrUnauthorized)
	secret, url, err := users.OtpSecret(ctx, id, "secret123")
	req.NoError(err)
	req.Contains(url, "secret="+secret)
	req.Contains(url, "issuer=SkillSwap")

	req.ErrorIs(users.OtpVerify(ctx, id, "000000"), service.ErrUnauthorized)
	code, err := totp.GenerateCode(secret, time.Now())
	req.NoError(err)
	req.NoError(users.OtpVerify(ctx, id, code))

	pending, err := users.Authenticate(ctx, registration.Email, "secret123")
	req.NoError(err)
	req.True(pending.OtpPending)

	full, err := users.OtpValidate(ctx, id, code)
	req.NoError(err)
	req.False(full.OtpPending)

	req.NoError(users.OtpDisable(ctx, id, "secret123", code))
	_, err = users.OtpValidate(ctx, id, code)
	req.ErrorIs(err, service.ErrValidation)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	users, _ := newUserService(t)
	registered, err := users.Register(ctx, registration)
	req.NoError(err)
	id := registered.User.ID

	updated, err := users.UpdateProfile(ctx, id, service.ProfilePatch{
		AboutMe:       ptr("I teach Hindi"),
		SkillsOffered: []string{"Hindi"},
		Name:          ptr("  "),
	})
	req.NoError(err)
	req.Equal("Meera", updated.Name)
	req.Equal([]string{"Hindi"}, updated.SkillsOffered)

	cleared, err := users.UpdateProfile(ctx, id, service.ProfilePatch{AboutMe: ptr("")})
	req.NoError(err)
	req.Empty(cleared.AboutMe)
	req.Equal([]string{"Hindi"}, cleared.SkillsOffered)

	_, err = users.UpdateProfile(ctx, id, service.ProfilePatch{Email: ptr("not-an-email")})
	req.ErrorIs(err, service.ErrValidation)

	_, err = users.UpdateProfile(ctx, 999, service.ProfilePatch{})
	req.ErrorIs(err, service.ErrNotFound)
}
