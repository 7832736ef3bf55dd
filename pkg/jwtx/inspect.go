package jwtx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when an access token is not a JWT. Providers are
// free to issue reference tokens, so callers should treat this as information
// rather than failure.
var ErrOpaqueToken = errors.New("jwtx: token is not a JWT")

// Inspection is a read-only view of an access token's claims. Nothing in it has
// been verified; it only exists to help an operator see what the provider
// granted.
type Inspection struct {
	Algorithm string         `json:"alg,omitempty"`
	KeyID     string         `json:"kid,omitempty"`
	Issuer    string         `json:"iss,omitempty"`
	Subject   string         `json:"sub,omitempty"`
	Audience  []string       `json:"aud,omitempty"`
	ClientID  string         `json:"client_id,omitempty"`
	Scopes    []string       `json:"scopes,omitempty"`
	IssuedAt  *time.Time     `json:"iat,omitempty"`
	ExpiresAt *time.Time     `json:"exp,omitempty"`
	Claims    map[string]any `json:"claims"`
}

// Expired reports whether the token's exp claim lies before now. Tokens
// without exp never expire as far as this view is concerned.
func (i Inspection) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// Inspect decodes raw without checking its signature.
func Inspect(raw string) (Inspection, error) {
	raw = strings.TrimSpace(raw)
	if strings.Count(raw, ".") != 2 {
		return Inspection{}, ErrOpaqueToken
	}

	claims := jwt.MapClaims{}
	token, _, err := jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		return Inspection{}, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	out := Inspection{Claims: claims}
	if alg, ok := token.Header["alg"].(string); ok {
		out.Algorithm = alg
	}
	if kid, ok := token.Header["kid"].(string); ok {
		out.KeyID = kid
	}

	out.Issuer, _ = claims.GetIssuer()
	out.Subject, _ = claims.GetSubject()
	if aud, err := claims.GetAudience(); err == nil {
		out.Audience = aud
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time.UTC()
		out.IssuedAt = &t
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		out.ExpiresAt = &t
	}
	if cid, ok := claims["client_id"].(string); ok {
		out.ClientID = cid
	}
	out.Scopes = scopesFromClaim(claims["scope"])

	return out, nil
}

// scopesFromClaim accepts both the RFC 8693 space-delimited string and the
// array form some identity servers emit.
func scopesFromClaim(v any) []string {
	switch s := v.(type) {
	case string:
		return strings.Fields(s)
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}
