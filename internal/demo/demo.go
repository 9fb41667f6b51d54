// Package demo is the example application served by "outlet serve". It
// has one top-level outlet under /app, a nested settings outlet, and a
// parameterized project layout.
package demo

import (
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/vdom"
)

// Title is the document title of the demo.
const Title = "Outlet demo"

// Styles is the demo stylesheet.
const Styles = `body{font-family:system-ui,sans-serif;margin:0}
.shell{display:grid;grid-template-columns:12rem 1fr;min-height:100vh}
.shell nav{display:flex;flex-direction:column;gap:.5rem;padding:1rem;background:#f4f4f5}
.shell main{padding:1rem}
.outlet{overflow:hidden}`

// Routes builds the demo route tree.
func Routes() *router.Router {
	r := router.NewRouter()

	r.Page("/", func(router.Params) *vdom.VNode {
		return vdom.Div(
			vdom.H1(Title),
			vdom.P(vdom.A(vdom.Href("/app"), "Open the app")),
		)
	})

	r.Layout("/app", appLayout)
	r.Page("/app", func(router.Params) *vdom.VNode {
		return vdom.Div(vdom.H1("Home"), vdom.P("Pick a section on the left."))
	})

	r.Layout("/app/settings", settingsLayout)
	r.Page("/app/settings/general", func(router.Params) *vdom.VNode {
		return vdom.Div(vdom.H3("General Settings"), vdom.P("Language, time zone and start page."))
	})
	r.Page("/app/settings/profile", func(router.Params) *vdom.VNode {
		return vdom.Div(vdom.H3("Profile Settings"), vdom.P("Name, avatar and contact details."))
	})

	r.Layout("/app/projects/:id", projectLayout)
	r.Page("/app/projects/:id", func(p router.Params) *vdom.VNode {
		return vdom.Div(vdom.H3("Overview"), vdom.Textf("Project %s is on track.", p["id"]))
	})
	r.Page("/app/projects/:id/activity", func(p router.Params) *vdom.VNode {
		return vdom.Div(vdom.H3("Activity"), vdom.Textf("No recent activity on project %s.", p["id"]))
	})

	r.SetNotFound(func(router.Params) *vdom.VNode {
		return vdom.Div(vdom.H1("Not Found"), vdom.P(vdom.A(vdom.Href("/app"), "Back to the app")))
	})
	return r
}

func appLayout(_ router.Params, children router.Slot) *vdom.VNode {
	return vdom.Div(
		vdom.Class("shell"),
		vdom.Nav(
			vdom.A(vdom.Href("/app"), "Home"),
			vdom.A(vdom.Href("/app/settings/general"), "Settings"),
			vdom.A(vdom.Href("/app/projects/1"), "Project 1"),
			vdom.A(vdom.Href("/app/projects/2"), "Project 2"),
		),
		vdom.Main(children),
	)
}

func settingsLayout(_ router.Params, children router.Slot) *vdom.VNode {
	return vdom.Section(
		vdom.H2("Settings"),
		vdom.Nav(
			vdom.A(vdom.Href("/app/settings/general"), "General"),
			vdom.A(vdom.Href("/app/settings/profile"), "Profile"),
		),
		children,
	)
}

func projectLayout(p router.Params, children router.Slot) *vdom.VNode {
	base := "/app/projects/" + p["id"]
	return vdom.Article(
		vdom.H2("Project "+p["id"]),
		vdom.Nav(
			vdom.A(vdom.Href(base), "Overview"),
			vdom.A(vdom.Href(base+"/activity"), "Activity"),
		),
		children,
	)
}
