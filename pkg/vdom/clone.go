package vdom

// Clone returns a deep copy of node. Props maps and child slices are
// copied; prop values themselves (strings, handlers) are shared. HIDs are
// cleared because they belong to the rendering that produced the original.
func Clone(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	out := &VNode{
		Kind: node.Kind,
		Tag:  node.Tag,
		Key:  node.Key,
		Text: node.Text,
	}
	if node.Props != nil {
		out.Props = make(Props, len(node.Props))
		for k, v := range node.Props {
			out.Props[k] = v
		}
	}
	if len(node.Children) > 0 {
		out.Children = make([]*VNode, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = Clone(child)
		}
	}
	return out
}

// DetachChildren removes node's children and returns them. The node is
// left empty; the caller owns the returned slice.
func (v *VNode) DetachChildren() []*VNode {
	if v == nil {
		return nil
	}
	children := v.Children
	v.Children = nil
	return children
}

// IsEmpty reports whether node renders nothing: nil, an empty fragment,
// or a fragment whose children are all empty.
func IsEmpty(node *VNode) bool {
	if node == nil {
		return true
	}
	if node.Kind != KindFragment {
		return false
	}
	for _, child := range node.Children {
		if !IsEmpty(child) {
			return false
		}
	}
	return true
}
