// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive front end driven by [App]. It is implemented by
// tui.TUI.
type UI interface {
	// LoginFlow blocks until the user signs in or up, or quits.
	LoginFlow(ctx context.Context) (models.Session, error)
	// MainLoop blocks until the user quits or signs out.
	MainLoop(ctx context.Context) (logout bool, err error)
}
