package auth

import "strings"

// Route prefixes with access policy attached to them
const (
	authPrefix      = "/auth"
	adminPrefix     = "/admin"
	dashboardPrefix = "/dashboard"

	SignInPath = "/auth/signin"
	AdminHome  = "/admin"
	HomePath   = "/"
)

// Decision is the outcome of evaluating the route guard for one request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// Evaluate applies the routing policy as a pure function of the request path
// and the caller's identity. Auth pages bounce authenticated callers to their
// home, admin pages require ADMIN, dashboard pages require USER, everything
// else is open.
func Evaluate(path string, id *Identity) Decision {
	switch {
	case hasPrefix(path, authPrefix):
		if id == nil {
			return allow()
		}
		if id.IsAdmin() {
			return redirect(AdminHome)
		}
		return redirect(HomePath)

	case hasPrefix(path, adminPrefix):
		if id == nil {
			return redirect(SignInPath)
		}
		if id.IsAdmin() {
			return allow()
		}
		return redirect(HomePath)

	case hasPrefix(path, dashboardPrefix):
		if id == nil {
			return redirect(SignInPath)
		}
		if id.IsUser() {
			return allow()
		}
		return redirect(AdminHome)
	}

	return allow()
}

// hasPrefix matches /admin and /admin/... but not /administrators
func hasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
