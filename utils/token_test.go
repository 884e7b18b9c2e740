package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func setTokenEnv(t *testing.T) {
	t.Setenv(AccessKey, "access-secret")
	t.Setenv(RefreshKey, "refresh-secret")
	t.Setenv(accessExpire, "5")
	t.Setenv(refreshExpire, "60")
}

func TestGenerateTokens(t *testing.T) {
	setTokenEnv(t)
	req := require.New(t)

	tokens, err := GenerateTokens(42, true)
	req.NoError(err)
	req.NotEqual(tokens.Access, tokens.Refresh)

	access, err := CheckAndExtractTokenMetadata(tokens.Access, AccessKey)
	req.NoError(err)
	req.Equal(uint(42), access.UserID)
	req.True(access.Otp)

	refresh, err := CheckAndExtractTokenMetadata(tokens.Refresh, RefreshKey)
	req.NoError(err)
	req.Equal(uint(42), refresh.UserID)
	req.Greater(refresh.Exp, access.Exp)
}

func TestCheckAndExtractTokenMetadata(t *testing.T) {
	setTokenEnv(t)

	t.Run("should reject a token signed with another key", func(t *testing.T) {
		tokens, err := GenerateTokens(7, false)
		require.NoError(t, err)

		_, err = CheckAndExtractTokenMetadata(tokens.Access, RefreshKey)
		require.Error(t, err)
	})

	t.Run("should reject a token without a user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"otp": false})
		signed, err := token.SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = CheckAndExtractTokenMetadata(signed, AccessKey)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
