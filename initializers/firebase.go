package initializers

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"firebase.google.com/go/v4/storage"
	"github.com/charmbracelet/log"
	"google.golang.org/api/option"
)

// Firebase holds the Admin SDK clients the server uses. Clients are created
// lazily so a deployment that only needs auth does not dial Firestore.
type Firebase struct {
	app *firebase.App
}

// InitFirebase initialises the Admin SDK from a service account file, or from
// Application Default Credentials when no path is configured.
func InitFirebase(ctx context.Context, cfg Config) (*Firebase, error) {
	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" || cfg.FirebaseStorageBucket != "" {
		fbConfig = &firebase.Config{
			ProjectID:     cfg.FirebaseProjectID,
			StorageBucket: cfg.FirebaseStorageBucket,
		}
	}

	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	if cfg.FirebaseServiceAccountPath != "" {
		log.Info("Firebase initialized with service account file")
	} else {
		log.Info("Firebase initialized with Application Default Credentials")
	}
	return &Firebase{app: app}, nil
}

func (f *Firebase) Firestore(ctx context.Context) (*firestore.Client, error) {
	client, err := f.app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return client, nil
}

func (f *Firebase) Auth(ctx context.Context) (*auth.Client, error) {
	client, err := f.app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth client: %w", err)
	}
	return client, nil
}

func (f *Firebase) Messaging(ctx context.Context) (*messaging.Client, error) {
	client, err := f.app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("messaging client: %w", err)
	}
	return client, nil
}

func (f *Firebase) Storage(ctx context.Context) (*storage.Client, error) {
	client, err := f.app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return client, nil
}
