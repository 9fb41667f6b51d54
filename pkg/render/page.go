package render

import (
	"fmt"
	"io"
)

// PageData contains everything needed to render the HTML document that
// hosts a session.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en".
	Lang string

	// RootID is the id of the element the client renders frames into.
	// Defaults to "outlet-root".
	RootID string

	// Body is optional server-rendered content for the root element.
	Body string

	// Styles contains inline CSS.
	Styles []string

	// ClientScript is the path to the thin client.
	// Defaults to "/_outlet/client.js".
	ClientScript string

	// SocketPath is the WebSocket endpoint the client connects to.
	// Defaults to "/_outlet/ws".
	SocketPath string
}

// DefaultRootID is the id of the element frames are rendered into.
const DefaultRootID = "outlet-root"

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if page.Lang == "" {
		page.Lang = "en"
	}
	if page.RootID == "" {
		page.RootID = DefaultRootID
	}
	if page.ClientScript == "" {
		page.ClientScript = "/_outlet/client.js"
	}
	if page.SocketPath == "" {
		page.SocketPath = "/_outlet/ws"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", escapeAttr(page.Lang)); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"); err != nil {
		return err
	}
	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}
	for _, css := range page.Styles {
		if _, err := fmt.Fprintf(w, "<style>%s</style>\n", css); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<div id=\"%s\">%s</div>\n", escapeAttr(page.RootID), page.Body); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "<script src=\"%s\" data-socket=\"%s\" data-root=\"%s\" defer></script>\n</body>\n</html>\n",
		escapeAttr(page.ClientScript), escapeAttr(page.SocketPath), escapeAttr(page.RootID))
	return err
}
