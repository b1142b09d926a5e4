package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claim is the identity payload carried inside a token. It lives only for
// the duration of a request; nothing is stored server-side.
type Claim struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	User Claim `json:"user"`
}

type JWT struct {
	secret []byte
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

// Issue signs claim together with an expiry of now+ttl. A non-positive ttl
// produces an already-expired token. The random jti makes every issued
// token distinct, even for the same claim within the same second.
func (j *JWT) Issue(claim Claim, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		User: claim,
	})
	return t.SignedString(j.secret)
}

// Verify checks the signature and expiry and returns the embedded claim.
// Expired tokens are reported as ErrTokenExpired so callers can prompt a
// re-login; everything else is ErrTokenInvalid.
func (j *JWT) Verify(tokenStr string) (Claim, error) {
	var claims tokenClaims
	t, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claim{}, ErrTokenExpired
		}
		return Claim{}, ErrTokenInvalid
	}
	if !t.Valid || claims.User.UserID == "" {
		return Claim{}, ErrTokenInvalid
	}
	return claims.User, nil
}
