package vdom

import (
	"fmt"
	"sort"
	"strings"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, child := range children {
		switch v := child.(type) {
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}
	return node
}

// Style creates a <style> element holding trusted CSS.
func Style(css string) *VNode {
	return createElement("style", []any{Raw(css)})
}

// attr builds an attribute.
func attr(key string, value any) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Inert marks an element and its subtree as non-interactive.
func Inert() Attr { return attr("inert", true) }

// AriaHidden sets aria-hidden.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// AttrIf returns the attribute only when condition holds.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// StyleMap renders CSS declarations into a style attribute.
// Declarations are sorted by property so output is deterministic.
func StyleMap(decls map[string]string) Attr {
	if len(decls) == 0 {
		return Attr{}
	}
	return attr("style", Declarations(decls))
}

// Declarations formats CSS declarations as "prop: value; ..." sorted by
// property name.
func Declarations(decls map[string]string) string {
	props := make([]string, 0, len(decls))
	for p := range decls {
		props = append(props, p)
	}
	sort.Strings(props)

	var b strings.Builder
	for i, p := range props {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(p)
		b.WriteString(": ")
		b.WriteString(decls[p])
		b.WriteString(";")
	}
	return b.String()
}

// On binds a handler to an event name ("click", "animationend").
func On(event string, handler any) EventHandler {
	return EventHandler{Event: "on" + event, Handler: handler}
}
