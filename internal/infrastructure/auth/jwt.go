package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techflow/techflow/internal/shared/authorization"
)

type Claims struct {
	Username string                 `json:"username"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type IssuedToken struct {
	AccessToken string
	ExpiresIn   int64
}

// JWTService issues and verifies session tokens signed with HS256.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	now              func() time.Time
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *JWTService) Generate(id authorization.Identity) (*IssuedToken, error) {
	now := s.now()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &IssuedToken{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}, nil
}

// Verify parses a token and returns the identity it carries. Unknown roles are
// downgraded to client.
func (s *JWTService) Verify(tokenString string) (authorization.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return authorization.Identity{}, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return authorization.Identity{}, fmt.Errorf("invalid token")
	}

	return authorization.Identity{
		Username: claims.Username,
		Role:     authorization.ParseUserRole(string(claims.Role)),
	}, nil
}

// AccessExpMinutes returns the access token expiration time in minutes
func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
