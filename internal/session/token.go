package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/ANITHAC1201/joicy/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims of a session token. ID (jti) keys the stored
// session and Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject as a user id.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// GenerateToken signs an HS256 token for session id sessionID of userID.
func GenerateToken(sessionID string, userID int64, secret []byte, issuedAt time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of tokenString.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	return parse(tokenString, secret)
}

// parseIgnoringExpiry verifies only the signature. Logout uses it so that an
// expired token can still be revoked.
func parseIgnoringExpiry(tokenString string, secret []byte) (*Claims, error) {
	return parse(tokenString, secret, jwt.WithoutClaimsValidation())
}

func parse(tokenString string, secret []byte, opts ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid || claims.ID == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
