package initializers

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mawaqit/stores"
)

// Backends bundles the stores selected by STORE_BACKEND.
type Backends struct {
	Records      stores.PrayerRecordStore
	Profiles     stores.UserProfileStore
	Inspirations stores.InspirationStore
	Images       stores.ImageStore

	// Postgres is set only for STORE_BACKEND=postgres.
	Postgres *stores.PostgresStore

	closers []func() error
}

// OpenBackends connects the configured store. fb may be nil unless the
// firestore backend is selected.
func OpenBackends(ctx context.Context, cfg Config, fb *Firebase) (*Backends, error) {
	b := &Backends{}

	switch cfg.StoreBackend {
	case StoreFirestore:
		if fb == nil {
			return nil, fmt.Errorf("firestore backend requires Firebase")
		}
		client, err := fb.Firestore(ctx)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		store := stores.NewFirestoreStore(client)
		b.Records, b.Profiles, b.Inspirations = store, store, store

	case StorePostgres:
		db, sqlDB, err := ConnectDB(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, sqlDB.Close)
		store := stores.NewPostgresStore(db, time.Now)
		b.Records, b.Profiles, b.Inspirations = store, store, store
		b.Postgres = store

	case StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		store := stores.NewMemoryStore(time.Now)
		b.Records, b.Profiles, b.Inspirations = store, store, store
	}

	if fb != nil && cfg.FirebaseStorageBucket != "" {
		client, err := fb.Storage(ctx)
		if err != nil {
			b.Close()
			return nil, err
		}
		images, err := stores.NewFirebaseImageStore(client, cfg.FirebaseStorageBucket)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Images = images
	} else {
		log.Warn("FIREBASE_STORAGE_BUCKET not set, profile images are kept in memory")
		b.Images = stores.NewMemoryImageStore("http://localhost:" + cfg.Port + "/images")
	}

	log.Info("store backend ready", "backend", cfg.StoreBackend)
	return b, nil
}

func (b *Backends) Close() {
	for _, closer := range b.closers {
		if err := closer(); err != nil {
			log.Warn("failed to close backend", "err", err)
		}
	}
}
