package guard

import (
	"testing"

	"github.com/university/admin-system/pkg/dashboard/session"
)

func newGuard(t *testing.T) (*Guard, *session.Store) {
	t.Helper()
	store, err := session.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return New(store), store
}

func TestGuard_CanEnterTracksSession(t *testing.T) {
	g, store := newGuard(t)

	if g.CanEnter() {
		t.Fatalf("empty session must not enter")
	}

	if err := store.Establish(session.User{ID: "u1", Username: "admin", Role: "ADMIN"}, "tok"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if !g.CanEnter() {
		t.Fatalf("authenticated session must enter")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if g.CanEnter() {
		t.Fatalf("access must be re-evaluated from the live store, not cached")
	}
}

func TestGuard_RedirectTarget(t *testing.T) {
	g, _ := newGuard(t)
	if g.RedirectTarget() != LoginPath {
		t.Fatalf("unexpected redirect target %q", g.RedirectTarget())
	}
}

func TestGuard_VisibleItems(t *testing.T) {
	items := []NavItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Students", Path: "/students", Roles: []string{"ADMIN", "TEACHER"}},
		{Label: "Courses", Path: "/courses"},
	}

	cases := []struct {
		name string
		user *session.User
		want []string
	}{
		{
			name: "no user hides role-gated items",
			want: []string{"Dashboard", "Courses"},
		},
		{
			name: "student role hides staff items",
			user: &session.User{ID: "u2", Username: "sam", Role: "STUDENT"},
			want: []string{"Dashboard", "Courses"},
		},
		{
			name: "teacher sees staff items",
			user: &session.User{ID: "u3", Username: "tess", Role: "TEACHER"},
			want: []string{"Dashboard", "Students", "Courses"},
		},
		{
			name: "admin sees everything",
			user: &session.User{ID: "u1", Username: "admin", Role: "ADMIN"},
			want: []string{"Dashboard", "Students", "Courses"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, store := newGuard(t)
			if tc.user != nil {
				if err := store.Establish(*tc.user, "tok"); err != nil {
					t.Fatalf("Establish: %v", err)
				}
			}

			visible := g.VisibleItems(items)
			if len(visible) != len(tc.want) {
				t.Fatalf("expected %v, got %+v", tc.want, visible)
			}
			for i, label := range tc.want {
				if visible[i].Label != label {
					t.Fatalf("expected %v, got %+v", tc.want, visible)
				}
			}
		})
	}
}
