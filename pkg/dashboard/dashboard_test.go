package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/university/admin-system/pkg/dashboard/gateway"
	"github.com/university/admin-system/pkg/dashboard/querycache"
	"github.com/university/admin-system/pkg/dashboard/session"
)

// fakeBackend is an in-memory stand-in for the administration API, covering
// the routes the dashboard core exercises.
type fakeBackend struct {
	mu       sync.Mutex
	students []gateway.Student
	courses  []gateway.Course
	nextID   int
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/students", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.students)
	})
	mux.HandleFunc("POST /api/students", func(w http.ResponseWriter, r *http.Request) {
		var s gateway.Student
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			t.Fatalf("decode student: %v", err)
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		s.ID = "s" + strconv.Itoa(b.nextID)
		b.students = append(b.students, s)
		writeJSON(w, s)
	})
	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.courses)
	})
	mux.HandleFunc("DELETE /api/courses/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		kept := b.courses[:0]
		for _, c := range b.courses {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		b.courses = kept
		writeJSON(w, map[string]string{"message": "Course deleted successfully"})
	})
	return mux
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func newTestApp(t *testing.T, backend *fakeBackend) *App {
	t.Helper()
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	app, err := New(srv.URL, t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := app.Sessions.Establish(session.User{ID: "u1", Username: "admin", Role: "ADMIN"}, "tok"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	return app
}

func TestApp_CreateStudentThenQueryRoundTrips(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})

	if state := app.Students.Refresh(context.Background()); len(state.Data) != 0 {
		t.Fatalf("expected empty initial list, got %+v", state.Data)
	}

	result := app.CreateStudent(context.Background(), gateway.Student{
		LastName:  "El Amrani",
		FirstName: "Yasmine",
		CIN:       "12345678",
		Email:     "a@b.com",
		Phone:     "21612345",
		Level:     "L2",
		Gender:    "Féminin",
		BirthDate: "2003-05-14",
	})
	if result.Status != querycache.MutationSuccess {
		t.Fatalf("mutation failed: %+v", result)
	}
	if result.Record.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if !app.Students.State().Stale {
		t.Fatalf("mutation must invalidate the student cache before returning")
	}

	state := app.Students.Refresh(context.Background())
	found := false
	for _, s := range state.Data {
		if s.CIN == "12345678" && s.Email == "a@b.com" {
			found = true
		}
	}
	if !found {
		t.Fatalf("re-fetched list missing created student: %+v", state.Data)
	}
}

func TestApp_DeleteCourseThenQueryExcludesIt(t *testing.T) {
	backend := &fakeBackend{
		courses: []gateway.Course{
			{ID: "c1", Name: "Algorithmique", Room: "B204", Instructor: "Dr. Haddad", Day: "Lundi", StartTime: "08:30", EndTime: "10:00"},
			{ID: "c2", Name: "Analyse", Room: "C101", Instructor: "Dr. Saidi", Day: "Mardi", StartTime: "10:15", EndTime: "11:45"},
		},
	}
	app := newTestApp(t, backend)

	if state := app.Courses.Refresh(context.Background()); len(state.Data) != 2 {
		t.Fatalf("expected 2 courses, got %+v", state.Data)
	}

	result := app.DeleteCourse(context.Background(), "c1")
	if result.Status != querycache.MutationSuccess {
		t.Fatalf("delete failed: %+v", result)
	}

	state := app.Courses.Refresh(context.Background())
	if len(state.Data) != 1 {
		t.Fatalf("expected 1 course after delete, got %+v", state.Data)
	}
	for _, c := range state.Data {
		if c.ID == "c1" {
			t.Fatalf("deleted course still present: %+v", state.Data)
		}
	}
}

func TestApp_NavItemsFollowRole(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})

	items := app.NavItems()
	if len(items) != 4 {
		t.Fatalf("admin should see all items, got %+v", items)
	}

	if err := app.Sessions.Establish(session.User{ID: "u2", Username: "sam", Role: "STUDENT"}, "tok2"); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	items = app.NavItems()
	for _, item := range items {
		if item.Path == "/students" {
			t.Fatalf("student role must not see the students section: %+v", items)
		}
	}
}
