// Command gatehouse runs the authentication web app: sign-up, log-in,
// session-backed home page, and log-out.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gatehouse/gatehouse"
	"github.com/gatehouse/gatehouse/sessions/redisstore"
	"github.com/gatehouse/gatehouse/stores"
	"github.com/gatehouse/gatehouse/stores/gae"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	users, err := newUserStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to the credential store: %v", err)
	}

	session := scs.New()
	session.Lifetime = 24 * time.Hour
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
		}
		session.Store = redisstore.New(client)
		log.Println("Using redis session store at", cfg.RedisAddr)
	}

	auth, err := gatehouse.New("Gatehouse", cfg.SessionSecret, users, session)
	if err != nil {
		log.Fatalf("Failed to set up auth: %v", err)
	}

	log.Println("app listening on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, auth.Handler()); err != nil {
		log.Fatal(err)
	}
}

// newUserStore picks the credential store backend: Datastore when a project
// is configured, the in-memory store otherwise.
func newUserStore(ctx context.Context, cfg *Config) (gatehouse.UserStore, error) {
	if cfg.DatastoreProject != "" {
		client, err := datastore.NewClient(ctx, cfg.DatastoreProject)
		if err != nil {
			return nil, err
		}
		log.Println("Using Datastore credential store in project", cfg.DatastoreProject)
		return gae.NewUserStore(client, ""), nil
	}

	slog.Warn("DATASTORE_PROJECT_ID not set; using in-memory credential store (users will not persist)")
	return stores.NewMemUserStore(), nil
}
