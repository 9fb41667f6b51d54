package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/outlet/pkg/vdom"
)

func render(t *testing.T, node *vdom.VNode) (string, *Renderer) {
	t.Helper()
	r := NewRenderer(RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return html, r
}

func TestRenderElements(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text", vdom.Text("hello"), "hello"},
		{"escaped text", vdom.Text("<b>&</b>"), "&lt;b&gt;&amp;&lt;/b&gt;"},
		{"raw", vdom.Raw("<b>x</b>"), "<b>x</b>"},
		{"empty div", vdom.Div(), "<div></div>"},
		{"void", vdom.Hr(), "<hr>"},
		{"nested", vdom.Div(vdom.P("a"), vdom.Span("b")), "<div><p>a</p><span>b</span></div>"},
		{"fragment", vdom.Fragment(vdom.P("a"), "b"), "<p>a</p>b"},
		{"attrs sorted", vdom.Div(vdom.Class("c"), vdom.ID("i")), `<div class="c" id="i"></div>`},
		{"attr escaped", vdom.Div(vdom.Data("x", `a"b`)), `<div data-x="a&quot;b"></div>`},
		{"boolean true", vdom.Div(vdom.Inert()), `<div inert></div>`},
		{"boolean false", vdom.Div(vdom.Attr{Key: "hidden", Value: false}), `<div></div>`},
		{"key", vdom.Div(vdom.Key("g1")), `<div data-key="g1"></div>`},
		{"style", vdom.Style("a{b:c}"), `<style>a{b:c}</style>`},
		{"style map", vdom.Div(vdom.StyleMap(map[string]string{"opacity": "0", "color": "red"})), `<div style="color: red; opacity: 0;"></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := render(t, tt.node)
			if got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(99)}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Fatal("expected error for element without tag")
	}
}

func TestRenderHandlers(t *testing.T) {
	clicked := 0
	ended := 0
	tree := vdom.Div(
		vdom.Div(vdom.On("click", func() { clicked++ })),
		vdom.P("plain"),
		vdom.Div(vdom.On("animationend", func() { ended++ })),
	)

	html, r := render(t, tree)

	if !strings.Contains(html, `data-hid="h1" data-on-click="true"`) && !strings.Contains(html, `data-on-click="true" data-hid="h1"`) {
		t.Errorf("missing h1 markers in %s", html)
	}
	if !strings.Contains(html, `data-hid="h2"`) {
		t.Errorf("missing h2 in %s", html)
	}
	if strings.Count(html, "data-hid") != 2 {
		t.Errorf("only interactive elements should get HIDs: %s", html)
	}

	handlers := r.Handlers()
	if len(handlers) != 2 {
		t.Fatalf("len(handlers) = %d, want 2", len(handlers))
	}
	handlers["h1_onclick"].(func())()
	handlers["h2_onanimationend"].(func())()
	if clicked != 1 || ended != 1 {
		t.Errorf("clicked=%d ended=%d, want 1 1", clicked, ended)
	}
}

func TestRendererReset(t *testing.T) {
	tree := vdom.Div(vdom.On("click", func() {}))
	r := NewRenderer(RendererConfig{HIDPrefix: "x"})

	first, _ := r.RenderToString(tree)
	r.Reset()
	second, _ := r.RenderToString(tree)

	if first != second {
		t.Errorf("renders differ after Reset:\n%s\n%s", first, second)
	}
	if !strings.Contains(first, `data-hid="x1"`) {
		t.Errorf("prefix not applied: %s", first)
	}
	if len(r.Handlers()) != 1 {
		t.Errorf("handlers = %d, want 1", len(r.Handlers()))
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, PageData{
		Title:  "A & B",
		Styles: []string{"body{margin:0}"},
		Body:   "<p>boot</p>",
	})
	if err != nil {
		t.Fatalf("RenderPage() error = %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>A &amp; B</title>",
		"<style>body{margin:0}</style>",
		`<div id="outlet-root"><p>boot</p></div>`,
		`src="/_outlet/client.js"`,
		`data-socket="/_outlet/ws"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}
