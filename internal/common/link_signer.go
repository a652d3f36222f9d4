package common

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DashboardToken is a validated progress-poll token
type DashboardToken struct {
	SessionID string
	TokenID   string
	ExpiresAt time.Time
}

// LinkSignerService signs short-lived dashboard links so the web UI can
// poll sync progress without holding an operator API key.
type LinkSignerService struct {
	secretKey []byte
}

// NewLinkSignerService reads DASHBOARD_LINK_SECRET from the environment
func NewLinkSignerService() *LinkSignerService {
	secret := os.Getenv("DASHBOARD_LINK_SECRET")
	if secret == "" {
		secret = "ledgersync-dev-secret"
	}
	return &LinkSignerService{secretKey: []byte(secret)}
}

// GenerateLinkToken signs a token scoped to one progress session
func (s *LinkSignerService) GenerateLinkToken(sessionID string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"session_id": sessionID,
		"jti":        tokenID,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and verifies a dashboard link token
func (s *LinkSignerService) ValidateToken(tokenString string) (*DashboardToken, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sessionID, _ := claims["session_id"].(string)
	tokenID, _ := claims["jti"].(string)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token missing expiry")
	}

	return &DashboardToken{
		SessionID: sessionID,
		TokenID:   tokenID,
		ExpiresAt: exp.Time,
	}, nil
}
