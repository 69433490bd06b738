// Package guard gates access to a view or command on session and
// permission state, navigating away on denial.
package guard

import (
	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/permission"
)

// State is a guard's position in its lifecycle. Unknown lasts until the
// session store has hydrated; Checking resolves synchronously to Allowed or
// Denied once it has.
type State int

const (
	Unknown State = iota
	Checking
	Allowed
	Denied
)

func (s State) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Checking:
		return "checking"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "invalid"
}

// Navigator performs the navigate-to side effect on denial.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// SessionState is what a guard needs to know about the session.
// *session.Store satisfies it.
type SessionState interface {
	Hydrated() bool
	Token() string
	User() *model.User
}

// Default navigation targets.
const (
	DefaultLoginPath    = "/login"
	DefaultFallbackPath = "/"
)

// Guard gates one subtree. All variants share the same machine and differ
// only in the minimum score; unauthenticated callers always go to the login
// path, under-privileged ones to the fallback.
type Guard struct {
	session  SessionState
	nav      Navigator
	minScore int

	LoginPath    string
	FallbackPath string
}

func newGuard(sess SessionState, nav Navigator, minScore int) *Guard {
	return &Guard{
		session:      sess,
		nav:          nav,
		minScore:     minScore,
		LoginPath:    DefaultLoginPath,
		FallbackPath: DefaultFallbackPath,
	}
}

// NewAuthenticated admits any authenticated user.
func NewAuthenticated(sess SessionState, nav Navigator) *Guard {
	return newGuard(sess, nav, 0)
}

// NewAdmin admits users with administrative capability.
func NewAdmin(sess SessionState, nav Navigator) *Guard {
	return newGuard(sess, nav, permission.ScoreAdmin)
}

// NewSuperAdmin admits users with super-administrative capability.
func NewSuperAdmin(sess SessionState, nav Navigator) *Guard {
	return newGuard(sess, nav, permission.ScoreSuperAdmin)
}

// NewMinScore admits users whose role score meets the caller-supplied
// minimum.
func NewMinScore(sess SessionState, nav Navigator, minScore int) *Guard {
	return newGuard(sess, nav, minScore)
}

// Evaluate computes the guard's state without side effects. Before
// hydration the state is Unknown. A token without a user counts as not yet
// fully authenticated, not as an error.
func (g *Guard) Evaluate() State {
	if !g.session.Hydrated() {
		return Unknown
	}
	if permission.NewEvaluator(g.session.User()).HasPermission(g.minScore) {
		return Allowed
	}
	return Denied
}

// Check runs the machine once. In Unknown it never navigates; the caller
// shows a loading indicator and retries after hydration. On denial it
// navigates: login when no user is present, fallback when the user exists
// but lacks the score. Returns the resolved state.
func (g *Guard) Check() State {
	state := g.Evaluate()
	if state != Denied {
		return state
	}

	if g.session.User() == nil {
		g.nav.NavigateTo(g.LoginPath)
	} else {
		g.nav.NavigateTo(g.FallbackPath)
	}
	return Denied
}
