package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"skillswap-service/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessKey  = "JWT_ACCESS_KEY"
	RefreshKey = "JWT_REFRESH_KEY"

	accessExpire  = "JWT_ACCESS_EXPIRE"
	refreshExpire = "JWT_REFRESH_EXPIRE"

	defaultAccessMinutes  = 15
	defaultRefreshMinutes = 7 * 24 * 60
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	UserID uint
	Otp    bool
	Exp    int64
}

// GenerateTokens issues an access and a refresh token for userID. otp marks
// a session that still has to pass the second factor.
func GenerateTokens(userID uint, otp bool) (*Tokens, error) {
	accessToken, err := generateToken(userID, otp, accessExpire, defaultAccessMinutes, AccessKey)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(userID, otp, refreshExpire, defaultRefreshMinutes, RefreshKey)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(userID uint, otp bool, expire string, fallback int, key string) (string, error) {
	minutesCount, err := strconv.Atoi(config.Config(expire))
	if err != nil || minutesCount <= 0 {
		minutesCount = fallback
	}

	claims := jwt.MapClaims{}

	// jti keeps tokens issued within the same second distinct
	claims["jti"] = uuid.NewString()
	claims["id"] = strconv.FormatUint(uint64(userID), 10)
	claims["otp"] = otp
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString([]byte(config.Config(key)))
}

// CheckAndExtractTokenMetadata verifies token against the secret stored
// under key and returns its claims.
func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := UserIDFromClaims(claims)
	if err != nil {
		return nil, err
	}
	otp, _ := claims["otp"].(bool)
	exp, _ := claims["exp"].(float64)

	return &TokenMetadata{
		UserID: userID,
		Otp:    otp,
		Exp:    int64(exp),
	}, nil
}

// UserIDFromClaims reads the user id the tokens carry as a decimal string.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["id"].(string)
	if !ok {
		return 0, fmt.Errorf("%w: missing id claim", ErrInvalidToken)
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: malformed id claim", ErrInvalidToken)
	}
	return uint(id), nil
}
