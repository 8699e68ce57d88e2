// Package guard gates navigation behind an established session and filters
// navigation items by role.
package guard

import (
	"slices"

	"github.com/university/admin-system/pkg/dashboard/session"
)

// LoginPath is the entry point unauthenticated navigation is redirected to.
// The originally requested location is not preserved.
const LoginPath = "/login"

// NavItem is a navigable action with an optional role allow-list. An empty
// Roles slice means visible to every authenticated user.
type NavItem struct {
	Label string
	Path  string
	Roles []string
}

// Guard evaluates access from the live session store at navigation time; no
// earlier check is cached.
type Guard struct {
	sessions *session.Store
}

func New(sessions *session.Store) *Guard {
	return &Guard{sessions: sessions}
}

// CanEnter reports whether the protected subtree may be entered right now.
func (g *Guard) CanEnter() bool {
	return g.sessions.Get().Authenticated()
}

// RedirectTarget returns where a rejected navigation is sent.
func (g *Guard) RedirectTarget() string {
	return LoginPath
}

// Visible reports whether item should be shown. Items with a role list are
// hidden, not disabled, when the current user's role is not allowed or when
// no user is loaded yet.
func (g *Guard) Visible(item NavItem) bool {
	if len(item.Roles) == 0 {
		return true
	}
	user := g.sessions.Get().User
	if user == nil {
		return false
	}
	return slices.Contains(item.Roles, user.Role)
}

// VisibleItems filters items down to those visible to the current user.
func (g *Guard) VisibleItems(items []NavItem) []NavItem {
	visible := make([]NavItem, 0, len(items))
	for _, item := range items {
		if g.Visible(item) {
			visible = append(visible, item)
		}
	}
	return visible
}
