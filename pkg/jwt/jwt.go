package jwt

import (
	"errors"
	"time"

	"sequoiacare/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const fallbackExpiry = 15 * time.Minute

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the identity (email in sub) and role of the bearer.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

// Issue signs a token for subject/role that expires after ttl.
// A non-positive ttl falls back to the configured default expiry.
func (s *JWTService) Issue(subject, role string, ttl time.Duration) (string, string, error) {
	if ttl <= 0 {
		ttl = s.config.DefaultExpiry
	}
	if ttl <= 0 {
		ttl = fallbackExpiry
	}

	now := s.now()
	tokenID := uuid.New().String()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

// GenerateAccessToken issues the login token using the configured access expiry.
func (s *JWTService) GenerateAccessToken(subject, role string) (string, string, error) {
	return s.Issue(subject, role, s.config.AccessExpiry)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TTL returns how long the token has left to live, used to expire its store entry.
func (s *JWTService) TTL(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Sub(s.now())
}
