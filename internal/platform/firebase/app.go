// Package firebase builds the Admin SDK clients the site needs: Auth for
// staff tokens and, when a store is backed by it, Firestore.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config selects the project and which clients to open.
type Config struct {
	ProjectID   string
	Credentials string // path to a service account JSON file, optional
	Firestore   bool
}

// Clients holds initialised clients. Firestore is nil unless requested.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// Options returns the client options derived from cfg.
func (cfg Config) Options() ([]option.ClientOption, error) {
	if cfg.Credentials == "" {
		return nil, nil
	}
	creds, err := os.ReadFile(cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("reading firebase credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// InitializeClients opens the Auth client and, if cfg.Firestore is set, Firestore.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase: project id is required")
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	clients := &Clients{Auth: ac}

	if cfg.Firestore {
		fc, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore: %w", err)
		}
		clients.Firestore = fc
	}
	return clients, nil
}

// Close closes the Firestore client when one was opened.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
