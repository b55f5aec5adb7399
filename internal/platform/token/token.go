package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeVote is the purpose every vote submission token must carry.
const PurposeVote = "rplus-do-rating"

// FeedbackPurpose returns the purpose a feedback continuation token for the
// given rating must carry. Binding the purpose to the rating id makes the
// token worthless for any other rating.
func FeedbackPurpose(ratingID int64) string {
	return fmt.Sprintf("rplus-do-feedback-%d", ratingID)
}

var ErrWrongPurpose = errors.New("token issued for a different purpose")

type Claims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	issuer string
}

func NewManager(secret, issuer string) *Manager {
	if issuer == "" {
		issuer = "rating-service"
	}
	return &Manager{secret: []byte(secret), issuer: issuer}
}

// Mint issues a purpose-bound token valid for ttl.
func (m *Manager) Mint(purpose string, ttl time.Duration) (string, error) {
	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature, expiry, issuer and that the token was minted for
// exactly the given purpose.
func (m *Manager) Verify(tokenStr, purpose string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, m.keyFunc)
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return jwt.ErrTokenInvalidClaims
	}
	if claims.Issuer != m.issuer {
		return jwt.ErrTokenInvalidIssuer
	}
	if claims.Purpose != purpose {
		return ErrWrongPurpose
	}
	return nil
}

// MintSession issues an admin session token.
func (m *Manager) MintSession(role string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) ParseSession(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, m.keyFunc)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		if claims.Issuer != m.issuer {
			return nil, jwt.ErrTokenInvalidIssuer
		}
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return m.secret, nil
}
