package gatehouse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// parseCredentialsForm pulls a username/password pair out of either an
// urlencoded form post or a JSON body.  Both the sign-up and log-in routes
// accept the same shape.
func parseCredentialsForm(r *http.Request) (username, password string, err error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var data map[string]any
		if err = json.NewDecoder(r.Body).Decode(&data); err != nil || data == nil {
			return "", "", fmt.Errorf("invalid post body")
		}
		if u, ok := data["username"].(string); ok {
			username = u
		}
		if p, ok := data["password"].(string); ok {
			password = p
		}
	} else {
		if err = r.ParseForm(); err != nil {
			return "", "", fmt.Errorf("error parsing form")
		}
		username = r.FormValue("username")
		password = r.FormValue("password")
	}

	if username == "" || password == "" {
		return "", "", fmt.Errorf("username and password required")
	}
	return username, password, nil
}
