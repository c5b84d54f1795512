package gatehouse

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

// Auth is the HTTP surface of the authentication flow.  It owns the route
// layer, the session manager and the signed auth token cookie, and delegates
// credential work to the injected UserStore, PasswordHasher and LocalStrategy.
//
// All collaborators are constructor-injected - there is no module level
// database state - so the whole surface can be exercised in tests with a
// substitutable in-memory store.
type Auth struct {
	router  *mux.Router
	Session *scs.SessionManager

	Middleware Middleware

	// Optional name used as a prefix for cookie/session var names
	AppName string

	// Must be passed in
	Users UserStore

	// Hashes and verifies passwords.  Defaults to bcrypt with cost 10.
	Hasher PasswordHasher

	// Authenticates login attempts.  Defaults to a LocalStrategy over Users.
	Strategy *LocalStrategy

	// SecretKey signs the auth token cookie.  Required - there is no
	// embedded default and New fails fast when it is absent.
	SecretKey string

	JwtIssuer           string
	AuthTokenCookieName string

	// How long a login is valid for.  Defaults to 1 day.
	SessionTimeoutInSeconds int
}

// New wires up an Auth over the given store and session manager.  secretKey
// must be non-empty: it signs the auth token cookie and deliberately has no
// default value.
func New(appName, secretKey string, users UserStore, session *scs.SessionManager) (*Auth, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("auth secret key is required")
	}
	if users == nil {
		return nil, fmt.Errorf("a user store is required")
	}
	if session == nil {
		session = scs.New()
	}
	a := &Auth{
		AppName:   appName,
		SecretKey: secretKey,
		Users:     users,
		Session:   session,
	}
	return a.EnsureDefaults(), nil
}

func (a *Auth) EnsureDefaults() *Auth {
	// ensure some defaults
	if a.AppName == "" {
		a.AppName = "Gatehouse"
	}
	if a.SessionTimeoutInSeconds <= 0 {
		a.SessionTimeoutInSeconds = 86400
	}
	if a.JwtIssuer == "" {
		a.JwtIssuer = fmt.Sprintf("%s-Issuer", a.AppName)
	}
	if a.AuthTokenCookieName == "" {
		a.AuthTokenCookieName = fmt.Sprintf("%sAuthToken", a.AppName)
	}
	if a.Hasher == nil {
		a.Hasher = &BcryptHasher{}
	}
	if a.Strategy == nil {
		a.Strategy = &LocalStrategy{Users: a.Users, Hasher: a.Hasher}
	}

	a.Middleware.Users = a.Users
	a.Middleware.AuthTokenCookieName = a.AuthTokenCookieName
	if a.Middleware.SessionGetter == nil {
		a.Middleware.SessionGetter = func(r *http.Request, param string) any {
			return a.Session.Get(r.Context(), param)
		}
	}
	if a.Middleware.VerifyToken == nil {
		a.Middleware.VerifyToken = a.verifyJWT
	}
	return a
}

// Handler returns the full request pipeline: session loading, identity
// extraction, then the route layer.
func (a *Auth) Handler() http.Handler {
	return a.Session.LoadAndSave(a.Middleware.ExtractUser(a.setupRoutes().router))
}

func (a *Auth) setupRoutes() *Auth {
	if a.router == nil {
		a.router = mux.NewRouter()
		a.router.HandleFunc("/", a.onHome).Methods("GET")
		a.router.HandleFunc("/sign-up", a.onSignupForm).Methods("GET")
		a.router.HandleFunc("/sign-up", a.onSignup).Methods("POST")
		a.router.HandleFunc("/log-in", a.onLogin).Methods("POST")
		a.router.HandleFunc("/log-out", a.onLogout).Methods("GET")
	}
	return a
}

func (a *Auth) verifyJWT(tokenString string) (loggedInUserId string, err error) {
	// Parse the token with the secret key
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(a.SecretKey), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims == nil {
		return "", fmt.Errorf("claims is not a map")
	}
	sub, err := claims.GetSubject()
	if sub == "" {
		return "", fmt.Errorf("subject not found")
	} else if err != nil {
		return "", err
	}
	return sub, nil
}

/**
 * Sets the session payload and the signed auth token cookie for a login, or
 * clears both for a logout (user == nil).
 */
func (a *Auth) setLoggedInUser(user *User, w http.ResponseWriter, r *http.Request) {
	a.EnsureDefaults()
	if user != nil {
		// Rotate the session token on privilege change
		if err := a.Session.RenewToken(r.Context()); err != nil {
			slog.Warn("error renewing session token", "err", err)
		}
		a.Session.Put(r.Context(), a.Middleware.UserParamName, user.Id)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": user.Id,
			"iss": a.JwtIssuer,
			"exp": time.Now().Add(time.Second * time.Duration(a.SessionTimeoutInSeconds)).Unix(),
			"iat": time.Now().Unix(),
		})
		tokenString, err := token.SignedString([]byte(a.SecretKey))
		if err != nil {
			slog.Warn("error signing token", "err", err)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     a.AuthTokenCookieName,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
			Expires:  time.Now().Add(time.Second * time.Duration(a.SessionTimeoutInSeconds)),
			MaxAge:   a.SessionTimeoutInSeconds,
		})
	} else {
		// clear the session and cookie values
		if err := a.Session.Destroy(r.Context()); err != nil {
			slog.Warn("error destroying session", "err", err)
		}
		http.SetCookie(w, &http.Cookie{
			Name:    a.AuthTokenCookieName,
			Path:    "/",
			MaxAge:  -1,
			Expires: time.Now(),
		})
	}
}

func (a *Auth) onLogin(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentialsForm(r)
	if err != nil {
		// Same silent redirect as a bad password - nothing about the failure
		// is surfaced to the end user.
		slog.Info("login rejected", "error", err)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	user, err := a.Strategy.Authenticate(r.Context(), username, password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			// Incorrect username vs password is for the logs only
			slog.Info("login failed", "code", authErr.Code, "username", username)
		} else {
			slog.Error("error validating user", "error", err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	a.setLoggedInUser(user, w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *Auth) onSignup(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentialsForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := a.Hasher.Hash(password)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		http.Error(w, "Sign up failed", http.StatusInternalServerError)
		return
	}

	user, err := a.Users.CreateUser(r.Context(), username, passwordHash)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			http.Error(w, "Username is already taken", http.StatusConflict)
			return
		}
		slog.Error("error creating user", "error", err)
		http.Error(w, "Sign up failed", http.StatusInternalServerError)
		return
	}
	log.Printf("Created user %s (%s)", user.Username, user.Id)

	// Signing up does not log the user in - login is a separate explicit step
	http.Redirect(w, r, "/", http.StatusFound)
}

func (a *Auth) onLogout(w http.ResponseWriter, r *http.Request) {
	a.setLoggedInUser(nil, w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
