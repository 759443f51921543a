// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"gramsetu/internal/cache"
	"gramsetu/internal/content"
	"gramsetu/internal/database"
	"gramsetu/internal/handlers"
	"gramsetu/internal/media"
	"gramsetu/internal/middleware"
	"gramsetu/internal/models"
	"gramsetu/internal/router"
	"gramsetu/internal/session"
	"gramsetu/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "gramsetu")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "gramsetu")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "route:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv bundles the full HTTP stack for handler tests.
type testEnv struct {
	db     *sql.DB
	valkey *redis.Client
	router chi.Router
	svc    *content.Service
}

// newTestEnv builds the router exactly as main does, minus S3.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	valkey := testValkeyClient(t)

	sessionStore := session.NewStore(valkey)
	routeCache := cache.NewRouteCache(valkey, time.Minute)

	contentStore := store.NewContentStore(db)
	categoryStore := store.NewCategoryStore(db)
	settingStore := store.NewSettingStore(db)
	directoryStore := store.NewDirectoryStore(db)

	svc := content.NewService(
		contentStore, categoryStore, settingStore,
		media.NewLinker(nil), routeCache, middleware.SessionAuthorizer{},
	)

	admin := handlers.NewAdmin(svc, categoryStore, settingStore, directoryStore, sessionStore, nil, routeCache)
	public := handlers.NewPublic(svc, settingStore, directoryStore, routeCache)

	return &testEnv{
		db:     db,
		valkey: valkey,
		router: router.New(sessionStore, admin, public),
		svc:    svc,
	}
}

// login issues a session the way the identity service does and returns
// the cookie to attach to requests.
func (e *testEnv) login(t *testing.T, role string) *http.Cookie {
	t.Helper()

	payload, err := json.Marshal(session.Data{
		UserID:      uuid.New(),
		Email:       "admin@gramsetu.local",
		DisplayName: "Panchayat Admin",
		Role:        role,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	id := uuid.NewString()
	if err := e.valkey.Set(context.Background(), "session:"+id, payload, time.Hour).Err(); err != nil {
		t.Fatalf("store session: %v", err)
	}
	return &http.Cookie{Name: session.CookieName, Value: id}
}

// testCategory ensures a category exists for the kind and returns it.
func (e *testEnv) testCategory(t *testing.T, kind models.Kind, name, slug string) *models.Category {
	t.Helper()

	cats := store.NewCategoryStore(e.db)
	existing, err := cats.FindBySlug(kind, slug)
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	if existing != nil {
		return existing
	}
	created, err := cats.Create(&models.Category{Kind: kind, Name: name, Slug: slug})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM categories WHERE id = $1", created.ID)
	})
	return created
}

// cleanupContent removes content rows by slug after the test.
func (e *testEnv) cleanupContent(t *testing.T, slugs ...string) {
	t.Helper()
	t.Cleanup(func() {
		for _, s := range slugs {
			e.db.Exec("DELETE FROM content WHERE slug = $1", s)
		}
	})
}
