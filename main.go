// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mtreilly/arc-recall/internal/cmd"
	"github.com/mtreilly/arc-recall/internal/config"
	"github.com/mtreilly/arc-recall/internal/deck"
	"github.com/mtreilly/arc-recall/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-recall: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Device store selection via ARC_RECALL_STORAGE.
	// Default: "sqlite" (persistent). Option: "memory" (in-memory only).
	// If SQLite fails (missing, corrupted, permissions), fall back to the
	// in-memory store so the tool remains operational without persistence.
	var kv store.KVStore
	switch cfg.Storage {
	case "sqlite":
		sqliteStore, err := store.OpenSQLiteStore(cfg.DBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open SQLite database: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			kv = store.NewMemoryStore()
		} else {
			kv = sqliteStore
		}

	case "memory":
		kv = store.NewMemoryStore()

	default:
		fmt.Fprintf(os.Stderr, "arc-recall: unknown storage backend %q (choose sqlite or memory)\n", cfg.Storage)
		os.Exit(1)
	}
	defer kv.Close()

	app := &cmd.App{Cfg: cfg, KV: kv}

	// Backend selection: a stored session token means signed-in mode
	// against the remote service, otherwise guest mode on this device.
	token, err := app.Token(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-recall: %v\n", err)
		os.Exit(1)
	}
	if token != "" {
		app.Manager = deck.NewManager(app.RemoteBackend(token))
	} else {
		app.Manager = deck.NewManager(app.LocalBackend())
	}

	root := cmd.NewRootCmd(app)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "arc-recall: %v\n", err)
		os.Exit(1)
	}
}
