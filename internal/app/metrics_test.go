package app

import "testing"

func TestRouteLabel(t *testing.T) {
	cases := map[string]string{
		"/todos":       "/todos",
		"/todos/":      "/todos/",
		"/todos/01ABC": "/todos/{id}",
		"/signup":      "/signup",
		"/healthz":     "/healthz",
	}
	for path, want := range cases {
		if got := routeLabel(path); got != want {
			t.Errorf("routeLabel(%q) = %q, want %q", path, got, want)
		}
	}
}
