package serverutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenClaims is the subset of JWT claims the service relies on.
type TokenClaims struct {
	UserId    uint
	Email     string
	ExpiresAt time.Time
	OrigIat   time.Time
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user. origIat is the time of the original
// login and survives refreshes; pass the zero time for a fresh login.
func (i *TokenIssuer) Issue(userId uint, email string, origIat time.Time) (string, TokenClaims, error) {
	now := i.now()
	if origIat.IsZero() {
		origIat = now
	}
	claims := jwt.MapClaims{
		"user_id":  userId,
		"email":    email,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
		"orig_iat": origIat.Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", TokenClaims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, TokenClaims{
		UserId:    userId,
		Email:     email,
		ExpiresAt: time.Unix(now.Add(i.ttl).Unix(), 0),
		OrigIat:   time.Unix(origIat.Unix(), 0),
	}, nil
}

// Parse verifies signature and expiry and extracts the claims.
func (i *TokenIssuer) Parse(tokenStr string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}

	// JSON numbers decode as float64
	rawId, ok := claims["user_id"].(float64)
	if !ok || rawId <= 0 {
		return TokenClaims{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	out := TokenClaims{UserId: uint(rawId)}
	out.Email, _ = claims["email"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if orig, ok := claims["orig_iat"].(float64); ok {
		out.OrigIat = time.Unix(int64(orig), 0)
	}
	return out, nil
}
