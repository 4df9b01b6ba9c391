// Package token reads and issues the JWTs exchanged between the payment
// gateway and the ticketing back-end.
//
// Client tokens are issued by the back-end when a payment starts and carry the
// booking it belongs to. The gateway never verifies them; Inspect only decodes
// the claims for display. Service tokens authenticate the gateway itself and
// must carry the PaymentGateway role.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleClaim is the claim name the back-end stores roles under.
	RoleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

	RolePaymentGateway   = "PaymentGateway"
	RoleClientChallenge  = "ClientChallenge"
	ClaimPayerID         = "payer-id"
	ClaimPaymentID       = "payment-id"
	ClaimSeatsBooked     = "seats-booked"
	ClaimScreenID        = "screen-id"
	ClaimMovieShowID     = "movieshow-id"
	DefaultServiceIssuer = "paysim"
)

var (
	ErrMalformed     = errors.New("token is malformed")
	ErrWrongRole     = errors.New("token does not carry the PaymentGateway role")
	ErrInvalidSecret = errors.New("signing secret cannot be empty")
)

type ClientClaims struct {
	Subject     string    `json:"sub,omitempty"`
	Role        string    `json:"role,omitempty"`
	PayerID     string    `json:"payer_id,omitempty"`
	PaymentID   string    `json:"payment_id,omitempty"`
	SeatsBooked string    `json:"seats_booked,omitempty"`
	ScreenID    string    `json:"screen_id,omitempty"`
	MovieShowID string    `json:"movieshow_id,omitempty"`
	Issuer      string    `json:"iss,omitempty"`
	Audience    []string  `json:"aud,omitempty"`
	ExpiresAt   time.Time `json:"exp,omitempty"`
}

// Seats splits the comma separated seats-booked claim.
func (c *ClientClaims) Seats() []string {
	if c.SeatsBooked == "" {
		return nil
	}
	var seats []string
	for _, s := range strings.Split(c.SeatsBooked, ",") {
		if s = strings.TrimSpace(s); s != "" {
			seats = append(seats, s)
		}
	}
	return seats
}

func (c *ClientClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Inspect decodes the claims of a client token without checking its
// signature or expiry.
func Inspect(raw string) (*ClientClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromMapClaims(claims)
}

func fromMapClaims(claims jwt.MapClaims) (*ClientClaims, error) {
	out := &ClientClaims{
		Role:        stringClaim(claims, RoleClaim),
		PayerID:     stringClaim(claims, ClaimPayerID),
		PaymentID:   stringClaim(claims, ClaimPaymentID),
		SeatsBooked: stringClaim(claims, ClaimSeatsBooked),
		ScreenID:    stringClaim(claims, ClaimScreenID),
		MovieShowID: stringClaim(claims, ClaimMovieShowID),
	}

	var err error
	if out.Subject, err = claims.GetSubject(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if out.Issuer, err = claims.GetIssuer(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	aud, err := claims.GetAudience()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out.Audience = aud

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// MintServiceToken issues an HS256 token with the PaymentGateway role.
func MintServiceToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidSecret
	}

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = subject
	claims[RoleClaim] = RolePaymentGateway
	claims["iss"] = DefaultServiceIssuer
	claims["exp"] = time.Now().Add(ttl).Unix()

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// MintClientToken issues a client challenge token carrying booking claims,
// the way the back-end does when a payment is started.
func MintClientToken(secret []byte, c ClientClaims, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidSecret
	}

	claims := jwt.MapClaims{
		"sub":            c.Subject,
		RoleClaim:        RoleClientChallenge,
		ClaimPayerID:     c.PayerID,
		ClaimPaymentID:   c.PaymentID,
		ClaimSeatsBooked: c.SeatsBooked,
		ClaimScreenID:    c.ScreenID,
		ClaimMovieShowID: c.MovieShowID,
		"iss":            DefaultServiceIssuer,
		"exp":            time.Now().Add(ttl).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyServiceToken checks signature, expiry and role of a service token and
// returns its subject.
func VerifyServiceToken(secret []byte, raw string) (string, error) {
	if len(secret) == 0 {
		return "", ErrInvalidSecret
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", err
	}

	if stringClaim(claims, RoleClaim) != RolePaymentGateway {
		return "", ErrWrongRole
	}

	subject, _ := claims.GetSubject()
	return subject, nil
}

// Fingerprint identifies a token in logs and events without disclosing it.
func Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:16]
}
