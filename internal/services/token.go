package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"songsearch/internal/config"
)

// ErrMissingCredentials is returned without any network call when a
// platform has no client id or secret configured.
var ErrMissingCredentials = errors.New("client credentials not configured")

// Token is an access token with its absolute expiry
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// ValidAt reports whether the token can still be used at now
func (t *Token) ValidAt(now time.Time) bool {
	return t != nil && t.AccessToken != "" && now.Before(t.ExpiresAt)
}

// TokenFetcher exchanges credentials for a fresh token
type TokenFetcher func(ctx context.Context) (*Token, error)

// TokenCache holds one provider's token. Concurrent callers that find it
// expired share a single exchange.
type TokenCache struct {
	platform string
	fetch    TokenFetcher
	now      func() time.Time

	mu    sync.RWMutex
	token *Token
	group singleflight.Group
}

// NewTokenCache creates a token cache. A nil clock uses time.Now.
func NewTokenCache(platform string, fetch TokenFetcher, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	return &TokenCache{
		platform: platform,
		fetch:    fetch,
		now:      now,
	}
}

// Get returns a valid access token, refreshing it when absent or expired
func (c *TokenCache) Get(ctx context.Context) (string, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token.ValidAt(c.now()) {
		return token.AccessToken, nil
	}

	// The shared exchange ignores any one caller's cancellation; each
	// caller stops waiting on its own ctx.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.platform, func() (any, error) {
		// Another caller may have refreshed while we waited
		c.mu.RLock()
		current := c.token
		c.mu.RUnlock()
		if current.ValidAt(c.now()) {
			return current, nil
		}

		fresh, err := c.fetch(fetchCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.token = fresh
		c.mu.Unlock()

		slog.Debug("Refreshed access token",
			"platform", c.platform,
			"expires_at", fresh.ExpiresAt)

		return fresh, nil
	})

	select {
	case <-ctx.Done():
		return "", tokenError(c.platform, "gave up waiting for token", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(*Token).AccessToken, nil
	}
}

// Current returns the cached token, or nil
func (c *TokenCache) Current() *Token {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ClientCredentialsFetcher exchanges client credentials at the platform's
// token URL with HTTP basic auth. Expiry is computed from expires_in
// against now; a response without expires_in expires immediately.
func ClientCredentialsFetcher(cfg *config.PlatformConfig, httpClient *http.Client, now func() time.Time) TokenFetcher {
	if now == nil {
		now = time.Now
	}

	ccConfig := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return func(ctx context.Context) (*Token, error) {
		if !cfg.HasCredentials() {
			return nil, tokenError(cfg.Name, "", ErrMissingCredentials)
		}

		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}

		issuedAt := now()
		tok, err := ccConfig.Token(ctx)
		if err != nil {
			return nil, tokenError(cfg.Name, "token exchange failed", err)
		}

		return &Token{
			AccessToken: tok.AccessToken,
			ExpiresAt:   issuedAt.Add(expiresIn(tok, issuedAt)),
		}, nil
	}
}

func expiresIn(tok *oauth2.Token, issuedAt time.Time) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case string:
		var secs int64
		if _, err := fmt.Sscan(v, &secs); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry.Sub(issuedAt)
	}
	return 0
}
