// Package gatehouse provides a minimal username/password authentication flow
// for Go web applications: registration with hashed-password storage,
// credential verification at login, session-backed "stay logged in" behavior,
// and logout.
//
// # Architecture
//
// User: the single persisted entity - an id, a username, and a salted bcrypt
// password hash.  The plaintext password is never stored.
//
// UserStore: the credential store.  Backends are provided for Google Cloud
// Datastore, GORM, the filesystem, and memory; any implementation of the
// three-method interface works.
//
// LocalStrategy: given a username and plaintext password, looks up the store,
// verifies via the hasher, and yields an authenticated user or a failure
// reason.  Every attempt reaches exactly one terminal outcome.
//
// Middleware: attaches the identity behind the session (or the signed auth
// token cookie) to the request context, rehydrated via the store on each
// request.  Invalid or expired cookies degrade silently to anonymous.
//
// # Basic Usage
//
// Set up a store and a session manager, then mount the handler:
//
//	import (
//	    "github.com/alexedwards/scs/v2"
//	    "github.com/gatehouse/gatehouse"
//	    "github.com/gatehouse/gatehouse/stores"
//	)
//
//	users := stores.NewMemUserStore()
//	session := scs.New()
//	auth, err := gatehouse.New("MyApp", os.Getenv("SESSION_SECRET"), users, session)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.ListenAndServe(":3000", auth.Handler())
//
// The handler serves GET /, GET+POST /sign-up, POST /log-in and GET /log-out.
// The secret key is required configuration: it signs the auth token cookie
// and there is deliberately no embedded default.
package gatehouse
