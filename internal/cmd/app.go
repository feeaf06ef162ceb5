// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mtreilly/arc-recall/internal/config"
	"github.com/mtreilly/arc-recall/internal/deck"
	"github.com/mtreilly/arc-recall/internal/store"
)

// keySessionToken is where the session credential lives in the device store.
const keySessionToken = "session_token"

// App bundles what every command needs: the resolved config, the data
// facade, and the device store holding the session credential.
type App struct {
	Cfg     *config.Config
	Manager *deck.Manager
	KV      store.KVStore
}

// Token returns the stored session credential, or "" when signed out.
func (a *App) Token(ctx context.Context) (string, error) {
	data, err := a.KV.Get(ctx, keySessionToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return string(data), nil
}

// SaveToken stores a session credential on the device.
func (a *App) SaveToken(ctx context.Context, token string) error {
	if err := a.KV.Set(ctx, keySessionToken, []byte(token)); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

// ClearToken removes the stored session credential.
func (a *App) ClearToken(ctx context.Context) error {
	if err := a.KV.Delete(ctx, keySessionToken); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// RemoteBackend builds a backend against the configured service.
func (a *App) RemoteBackend(token string) deck.Backend {
	return deck.NewRemoteBackend(a.Cfg.APIBaseURL, token, a.Cfg.HTTPTimeout)
}

// LocalBackend builds a guest backend over the device store.
func (a *App) LocalBackend() deck.Backend {
	return deck.NewLocalBackend(a.KV)
}

// load fills the manager's collections before a data command runs. A
// rejected credential is not fatal: the token is cleared and the command
// proceeds against the guest store.
func (a *App) load(ctx context.Context) error {
	err := a.Manager.Reload(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, deck.ErrUnauthorized) {
		return fmt.Errorf("load collections: %w", err)
	}

	fmt.Fprintln(os.Stderr, "WARNING: session expired or rejected, continuing as guest")
	if cerr := a.ClearToken(ctx); cerr != nil {
		return cerr
	}
	if serr := a.Manager.SwitchBackend(ctx, a.LocalBackend()); serr != nil {
		return fmt.Errorf("load guest collections: %w", serr)
	}
	return nil
}

// truncate shortens a string for table display.
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		if len(s) > max {
			return s[:max]
		}
		return s
	}
	return s[:max-3] + "..."
}
