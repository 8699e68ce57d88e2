// Package dashboard wires the client-side core of the administration UI:
// the session store, the API gateway client, one synchronized query cache per
// resource collection, and the route guard.
package dashboard

import (
	"context"

	"github.com/university/admin-system/pkg/dashboard/gateway"
	"github.com/university/admin-system/pkg/dashboard/guard"
	"github.com/university/admin-system/pkg/dashboard/querycache"
	"github.com/university/admin-system/pkg/dashboard/session"
)

// App bundles the dashboard core. Sessions and the per-resource caches are
// single instances shared by every view; construct one App per process (or
// per test).
type App struct {
	Sessions *session.Store
	API      *gateway.Client
	Guard    *guard.Guard

	Students *querycache.Query[gateway.Student]
	Courses  *querycache.Query[gateway.Course]
}

// New creates the dashboard core against the API at baseURL, persisting the
// session under storageDir (empty selects the user config directory).
func New(baseURL, storageDir string) (*App, error) {
	sessions, err := session.NewStore(storageDir)
	if err != nil {
		return nil, err
	}

	api := gateway.NewClient(baseURL, sessions)

	return &App{
		Sessions: sessions,
		API:      api,
		Guard:    guard.New(sessions),
		Students: querycache.New(api.ListStudents),
		Courses:  querycache.New(api.ListCourses),
	}, nil
}

// NavItems returns the dashboard navigation, already filtered by the current
// user's role. The student section is staff-only.
func (a *App) NavItems() []guard.NavItem {
	return a.Guard.VisibleItems([]guard.NavItem{
		{Label: "Dashboard", Path: "/dashboard"},
		{Label: "Students", Path: "/students", Roles: []string{"ADMIN", "TEACHER"}},
		{Label: "Courses", Path: "/courses"},
		{Label: "Settings", Path: "/settings"},
	})
}

// CreateStudent issues the create through the gateway and synchronizes the
// student cache on success.
func (a *App) CreateStudent(ctx context.Context, input gateway.Student) querycache.MutationResult[*gateway.Student] {
	return querycache.Mutate(ctx, a.Students, func(ctx context.Context) (*gateway.Student, error) {
		return a.API.CreateStudent(ctx, input)
	})
}

// UpdateStudent issues the update through the gateway and synchronizes the
// student cache on success.
func (a *App) UpdateStudent(ctx context.Context, id string, input gateway.Student) querycache.MutationResult[*gateway.Student] {
	return querycache.Mutate(ctx, a.Students, func(ctx context.Context) (*gateway.Student, error) {
		return a.API.UpdateStudent(ctx, id, input)
	})
}

// DeleteStudent issues the delete through the gateway and synchronizes the
// student cache on success.
func (a *App) DeleteStudent(ctx context.Context, id string) querycache.MutationResult[struct{}] {
	return querycache.Mutate(ctx, a.Students, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.API.DeleteStudent(ctx, id)
	})
}

// CreateCourse issues the create through the gateway and synchronizes the
// course cache on success.
func (a *App) CreateCourse(ctx context.Context, input gateway.Course) querycache.MutationResult[*gateway.Course] {
	return querycache.Mutate(ctx, a.Courses, func(ctx context.Context) (*gateway.Course, error) {
		return a.API.CreateCourse(ctx, input)
	})
}

// UpdateCourse issues the update through the gateway and synchronizes the
// course cache on success.
func (a *App) UpdateCourse(ctx context.Context, id string, input gateway.Course) querycache.MutationResult[*gateway.Course] {
	return querycache.Mutate(ctx, a.Courses, func(ctx context.Context) (*gateway.Course, error) {
		return a.API.UpdateCourse(ctx, id, input)
	})
}

// DeleteCourse issues the delete through the gateway and synchronizes the
// course cache on success.
func (a *App) DeleteCourse(ctx context.Context, id string) querycache.MutationResult[struct{}] {
	return querycache.Mutate(ctx, a.Courses, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.API.DeleteCourse(ctx, id)
	})
}
