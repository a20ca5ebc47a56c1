// internal/handlers/static.go
package handlers

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// StaticHandler serves the bundled single-page shell. Paths that do not
// match a file on disk fall back to the shell so client-side routes work
// after a page reload.
type StaticHandler struct {
	root   string
	logger *slog.Logger
}

// NewStaticHandler creates a handler serving files from root.
func NewStaticHandler(root string, logger *slog.Logger) *StaticHandler {
	return &StaticHandler{
		root:   root,
		logger: logger.With(slog.String("handler", "static")),
	}
}

// Serve handles GET / and every non-API path.
func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	// Clean with a leading slash so traversal cannot escape the root.
	name := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		http.ServeFile(w, r, name)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
}
