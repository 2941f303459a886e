package ws

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

var ErrInvalidTicket = errors.New("invalid ticket")

// TicketIssuer signs short lived HS256 seat tickets
type TicketIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTicketIssuer(secret string, ttl time.Duration) (*TicketIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("ticket secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ticket ttl must be positive")
	}
	return &TicketIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a ticket for the named player
func (t *TicketIssuer) Issue(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	now := t.now()
	claims := jwt.MapClaims{
		"sub": name,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the player name
func (t *TicketIssuer) Verify(ticket string) (string, error) {
	token, err := jwt.Parse(ticket, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidTicket
	}
	name, _ := claims["sub"].(string)
	if name == "" {
		return "", fmt.Errorf("%w: missing sub", ErrInvalidTicket)
	}
	return name, nil
}
