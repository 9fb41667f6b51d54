// Package routepath normalizes URL paths and answers ancestry questions
// about them.
//
// Every path that reaches the transition registry or the navigator goes
// through [CanonicalizePath] first, so that "/app/", "/app//" and "/app"
// name the same outlet. [IsDescendant] is the prefix rule used to find the
// outlet that owns a navigation destination:
//
//	routepath.IsDescendant("/", "/anything")      // true, root owns everything
//	routepath.IsDescendant("/a/b", "/a/b")        // true
//	routepath.IsDescendant("/a/b", "/a/b/c")      // true
//	routepath.IsDescendant("/a/b", "/a/bc")       // false
package routepath
