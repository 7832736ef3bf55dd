package approvalsdk

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// ExchangeAuthorizationCode trades an authorization code for tokens.
//
// The request is a form POST carrying grant_type, code, redirect_uri,
// client_id and client_secret. redirectURI must match the value used when
// building the authorize URL; empty means the configured one.
func (c *SDKClient) ExchangeAuthorizationCode(
	ctx context.Context,
	code, redirectURI string,
) (*TokenResponse, error) {
	var opts []oauth2.AuthCodeOption
	if redirectURI != "" {
		opts = append(opts, oauth2.SetAuthURLParam("redirect_uri", redirectURI))
	}

	tok, err := c.oauth.Exchange(c.withHTTPClient(ctx), code, opts...)
	if err != nil {
		return nil, tokenError("authorization_code", err)
	}

	return toTokenResponse(tok, time.Now()), nil
}

// RefreshGrant requests new tokens using a refresh token. When the server does
// not rotate the refresh token, the one passed in is returned.
func (c *SDKClient) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, &TokenExchangeError{Grant: "refresh_token", Err: errors.New("no refresh token available")}
	}

	// An already expired seed forces the token source to hit the token endpoint.
	seed := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Unix(1, 0)}

	tok, err := c.oauth.TokenSource(c.withHTTPClient(ctx), seed).Token()
	if err != nil {
		return nil, tokenError("refresh_token", err)
	}

	return toTokenResponse(tok, time.Now()), nil
}

func (c *SDKClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
}

func toTokenResponse(tok *oauth2.Token, now time.Time) *TokenResponse {
	resp := &TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		ExpiresIn:    tok.ExpiresIn,
	}

	if resp.ExpiresIn == 0 && !tok.Expiry.IsZero() {
		resp.ExpiresIn = int64(tok.Expiry.Sub(now).Round(time.Second) / time.Second)
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		resp.Scope = scope
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		resp.IDToken = idToken
	}

	return resp
}

func tokenError(grant string, err error) error {
	out := &TokenExchangeError{Grant: grant, Err: err}

	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		out.Code = re.ErrorCode
		out.Description = re.ErrorDescription
		if re.Response != nil {
			out.StatusCode = re.Response.StatusCode
		}
		if out.Code == "" && out.Description == "" {
			out.Description = strings.TrimSpace(string(re.Body))
		}
	}

	return out
}
