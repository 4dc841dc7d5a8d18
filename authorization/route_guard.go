package authorization

import (
	"net/url"

	"rental_frontend/domain"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

type Outcome int

const (
	// Suspend renders a placeholder while the session is still being restored.
	Suspend Outcome = iota
	RedirectLogin
	RedirectUnauthorized
	Render
)

func (o Outcome) String() string {
	switch o {
	case Suspend:
		return "suspend"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "render"
}

type Decision struct {
	Outcome  Outcome
	Location string
}

// SessionView is what the guard reads from the session store.
type SessionView interface {
	Initialized() bool
	Snapshot() domain.Session
}

// Evaluate decides one navigation. It holds no state and must be called
// again for every request. The user needs one of the required roles; no
// required role admits any logged in user.
func Evaluate(view SessionView, requested string, required ...domain.Role) Decision {
	if !view.Initialized() {
		return Decision{Outcome: Suspend}
	}

	session := view.Snapshot()
	if !session.IsAuthenticated() {
		return Decision{Outcome: RedirectLogin, Location: LoginRedirect(requested)}
	}

	if !hasRole(session.User, required) {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}

	return Decision{Outcome: Render}
}

func hasRole(user *domain.UserSummary, required []domain.Role) bool {
	restricted := false
	for _, role := range required {
		if role == "" {
			continue
		}
		restricted = true
		if user != nil && user.Role == role {
			return true
		}
	}
	return !restricted
}

// LoginRedirect remembers where the user was headed.
func LoginRedirect(requested string) string {
	if requested == "" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{"from": {requested}}.Encode()
}
