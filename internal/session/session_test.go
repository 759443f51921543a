package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test keys.
		keys, _ := client.Keys(ctx, "session:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// issueSession writes a session payload the way the identity service
// does and returns the session ID.
func issueSession(t *testing.T, client *redis.Client, data *Data) string {
	t.Helper()
	data.CreatedAt = time.Now()
	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	id := uuid.NewString()
	if err := client.Set(context.Background(), keyPrefix+id, payload, time.Hour).Err(); err != nil {
		t.Fatalf("store session: %v", err)
	}
	return id
}

func TestSessionGet(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	id := issueSession(t, client, &Data{
		UserID:      uuid.New(),
		Email:       "admin@session.local",
		DisplayName: "Panchayat Admin",
		Role:        "admin",
	})

	r := httptest.NewRequest(http.MethodGet, "/admin/api/news", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: id})

	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil {
		t.Fatal("expected session data")
	}
	if data.Email != "admin@session.local" || data.Role != "admin" {
		t.Errorf("payload: got %+v", data)
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil session without cookie, got %+v", data)
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "does-not-exist"})

	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("expected nil session for unknown ID, got %+v", data)
	}
}

func TestSessionDestroy(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client)

	id := issueSession(t, client, &Data{UserID: uuid.New(), Role: "admin"})

	r := httptest.NewRequest(http.MethodPost, "/admin/api/logout", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	w := httptest.NewRecorder()

	if err := store.Destroy(context.Background(), w, r); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	// Session is gone.
	data, err := store.Get(context.Background(), r)
	if err != nil {
		t.Fatalf("Get after destroy: %v", err)
	}
	if data != nil {
		t.Error("session survived destroy")
	}

	// Cookie is expired on the response.
	cookies := w.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == CookieName {
			found = true
			if c.MaxAge != -1 {
				t.Errorf("cookie max-age: got %d, want -1", c.MaxAge)
			}
		}
	}
	if !found {
		t.Error("expected expired session cookie on response")
	}
}
