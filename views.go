package gatehouse

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.AppName}}</title></head>
<body>
{{if .User}}
<h1>Welcome back, {{.User.Username}}!</h1>
<a href="/log-out">Log out</a>
{{else}}
<h1>Please log in</h1>
<form method="POST" action="/log-in">
	<label>Username: <input type="text" name="username" required></label>
	<label>Password: <input type="password" name="password" required></label>
	<button type="submit">Log in</button>
</form>
<a href="/sign-up">Sign up</a>
{{end}}
</body>
</html>`))

// onHome renders the home view with the current identity (or anonymous)
func (a *Auth) onHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	err := homeTemplate.Execute(w, map[string]any{
		"AppName": a.AppName,
		"User":    a.Middleware.CurrentUser(r),
	})
	if err != nil {
		slog.Warn("error rendering home view", "error", err)
	}
}

// onSignupForm shows the sign-up form (GET).  No identity required.
func (a *Auth) onSignupForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>Sign Up</title></head>
<body>
<h1>Sign Up</h1>
<form method="POST" action="/sign-up">
	<label>Username: <input type="text" name="username" required></label>
	<label>Password: <input type="password" name="password" required></label>
	<button type="submit">Sign Up</button>
</form>
</body>
</html>`)
}
