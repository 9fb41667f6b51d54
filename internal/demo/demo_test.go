package demo

import (
	"strings"
	"testing"

	"github.com/vango-dev/outlet/pkg/render"
	"github.com/vango-dev/outlet/pkg/router"
)

func TestRoutesLayoutChains(t *testing.T) {
	r := Routes()
	tests := []struct {
		path    string
		layouts []string
		params  router.Params
	}{
		{"/", nil, nil},
		{"/app", []string{"/app"}, nil},
		{"/app/settings/general", []string{"/app", "/app/settings"}, nil},
		{"/app/settings/profile", []string{"/app", "/app/settings"}, nil},
		{"/app/projects/7", []string{"/app", "/app/projects/:id"}, router.Params{"id": "7"}},
		{"/app/projects/7/activity", []string{"/app", "/app/projects/:id"}, router.Params{"id": "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := r.Match(tt.path)
			if !ok {
				t.Fatalf("Match(%q) found nothing", tt.path)
			}
			var got []string
			for _, l := range m.Layouts {
				got = append(got, l.RouteID)
			}
			if strings.Join(got, ",") != strings.Join(tt.layouts, ",") {
				t.Errorf("layouts = %v, want %v", got, tt.layouts)
			}
			for k, v := range tt.params {
				if m.Params[k] != v {
					t.Errorf("param %s = %q, want %q", k, m.Params[k], v)
				}
			}
		})
	}
}

func TestRoutesNotFound(t *testing.T) {
	r := Routes()
	if _, ok := r.Match("/nope"); ok {
		t.Fatal("Match(/nope) matched")
	}
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(r.NotFound()(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "Not Found") {
		t.Errorf("not-found page = %q", html)
	}
}

func TestProjectLayoutLinks(t *testing.T) {
	m, ok := Routes().Match("/app/projects/3")
	if !ok {
		t.Fatal("no match")
	}
	layout := m.Layouts[1]
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(layout.Handler(m.Params, m.Page(m.Params)))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Project 3", `href="/app/projects/3/activity"`, "Project 3 is on track."} {
		if !strings.Contains(html, want) {
			t.Errorf("layout html missing %q:\n%s", want, html)
		}
	}
}
