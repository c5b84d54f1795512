package gatehouse

import (
	"context"
	"log/slog"
	"net/http"
)

type currentUserKey string

// Middleware resolves the identity behind a request.  The session is checked
// first; failing that, the signed auth token cookie.  Whatever id is found is
// rehydrated into a full *User via the UserStore and attached to the request
// context for the duration of that request only.
//
// A cookie that fails verification, is expired, or references a session with
// no stored payload is treated identically to "no identity" - the request
// proceeds as anonymous and this is never a hard error.
type Middleware struct {
	AuthTokenCookieName string
	UserParamName       string

	// Reads a value out of the request's session
	SessionGetter func(r *http.Request, param string) any

	// Verifies a signed auth token and returns the user id it carries
	VerifyToken func(tokenString string) (loggedInUserId string, err error)

	// Rehydrates a session payload (user id) into a full identity
	Users UserStore
}

/**
 * Ensures that config values have reasonable defaults.
 */
func (m *Middleware) EnsureReasonableDefaults() {
	if m.UserParamName == "" {
		m.UserParamName = "loggedInUserId"
	}
	if m.AuthTokenCookieName == "" {
		m.AuthTokenCookieName = "authToken"
	}
}

/**
 * Fetches the user behind the request and makes it available to downstream
 * handlers via the request context.
 *
 * Note this does not perform any redirects if a valid user does not exist.
 * To also enforce a user exists, use the EnsureUser handler which both
 * extracts the user and ensures one is logged in.
 */
func (m *Middleware) ExtractUser(next http.Handler) http.Handler {
	m.EnsureReasonableDefaults()
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			user := m.resolveUser(r)
			next.ServeHTTP(w, m.setCurrentUser(user, r))
		},
	)
}

// EnsureUser is like ExtractUser but rejects anonymous requests with a
// redirect to "/".
func (m *Middleware) EnsureUser(next http.Handler) http.Handler {
	m.EnsureReasonableDefaults()
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			user := m.resolveUser(r)
			if user == nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, m.setCurrentUser(user, r))
		},
	)
}

// CurrentUser returns the identity attached to the request, or nil for an
// anonymous request.
func (m *Middleware) CurrentUser(r *http.Request) *User {
	v := r.Context().Value(currentUserKey(m.UserParamName))
	if v == nil {
		return nil
	}
	user, _ := v.(*User)
	return user
}

func (m *Middleware) resolveUser(r *http.Request) *User {
	userId := m.loggedInUserId(r)
	if userId == "" {
		return nil
	}

	user, err := m.Users.GetUserById(r.Context(), userId)
	if err != nil {
		// A dangling session (user id with no record) proceeds as anonymous.
		// Store failures degrade to anonymous too rather than failing the
		// request.
		slog.Warn("could not rehydrate session user", "userId", userId, "error", err)
		return nil
	}
	return user
}

// Gets the logged in user id from the session first, then from the signed
// auth token cookie.
func (m *Middleware) loggedInUserId(r *http.Request) string {
	if m.SessionGetter != nil {
		if v := m.SessionGetter(r, m.UserParamName); v != nil {
			if userId, ok := v.(string); ok && userId != "" {
				return userId
			}
		}
	}

	if m.VerifyToken == nil {
		return ""
	}

	for _, cookie := range r.Cookies() {
		if cookie.Name != m.AuthTokenCookieName || len(cookie.Value) == 0 {
			continue
		}
		userId, err := m.VerifyToken(cookie.Value)
		if err == nil && userId != "" {
			return userId
		} else if err != nil {
			slog.Warn("error verifying auth token", "error", err)
		}
	}
	return ""
}

// Set the resolved user into the request's context.
// This will make it available to all other handlers downstream.
func (m *Middleware) setCurrentUser(user *User, r *http.Request) *http.Request {
	if user == nil {
		return r
	}
	contextWithUser := context.WithValue(r.Context(), currentUserKey(m.UserParamName), user)
	return r.WithContext(contextWithUser)
}
