package gatehouse_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	gh "github.com/gatehouse/gatehouse"
	"github.com/gatehouse/gatehouse/stores"
)

func currentUserProbe(m *gh.Middleware, got **gh.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = m.CurrentUser(r)
	})
}

func TestExtractUserAnonymous(t *testing.T) {
	users := stores.NewMemUserStore()
	user, err := users.CreateUser(context.Background(), "alice", "some-digest")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	tests := []struct {
		name      string
		sessionId string // value the session getter returns, "" for none
		wantUser  bool
	}{
		{"no session", "", false},
		{"valid session", user.Id, true},
		// A session whose payload points at no stored record proceeds as
		// anonymous, never a hard error
		{"dangling session", "no-such-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &gh.Middleware{
				Users: users,
				SessionGetter: func(r *http.Request, param string) any {
					if tt.sessionId == "" {
						return nil
					}
					return tt.sessionId
				},
			}

			var got *gh.User
			req := httptest.NewRequest("GET", "/", nil)
			rec := httptest.NewRecorder()
			m.ExtractUser(currentUserProbe(m, &got)).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if tt.wantUser && (got == nil || got.Username != "alice") {
				t.Errorf("expected alice, got %+v", got)
			}
			if !tt.wantUser && got != nil {
				t.Errorf("expected anonymous, got %+v", got)
			}
		})
	}
}

func TestEnsureUserRedirectsAnonymous(t *testing.T) {
	users := stores.NewMemUserStore()
	m := &gh.Middleware{
		Users:         users,
		SessionGetter: func(r *http.Request, param string) any { return nil },
	}

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/secret", nil)
	rec := httptest.NewRecorder()
	m.EnsureUser(inner).ServeHTTP(rec, req)

	if called {
		t.Error("protected handler ran for an anonymous request")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
}
