// Package vdom provides the virtual DOM used by outlet's server runtime.
//
// A VNode is an in-memory description of an element, a text run, a
// fragment or a chunk of raw HTML. Layouts and pages build trees with the
// variadic element helpers:
//
//	Div(Class("card"), Key("g3"),
//	    H1(Text("Settings")),
//	    P(Text("General preferences")),
//	)
//
// Trees are plain values owned by whoever holds the root pointer. Two
// operations transfer that ownership explicitly, and the transition outlet
// relies on both:
//
//   - [Clone] deep-copies a subtree so the copy can outlive the original.
//   - [VNode.DetachChildren] removes and returns a node's children, leaving
//     the node empty.
package vdom
