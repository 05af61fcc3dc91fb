package sass

import (
	"io/fs"
	"net/http"

	"github.com/sassgo/sass/internal/strings"
)

// Handler compiles and serves Sass stylesheets over HTTP: a request for
// `style.scss` or `style.sass` under the configured prefix is compiled
// against the handler's filesystem and answered as CSS.
type Handler struct {
	pathPrefix string
	fileSystem fs.FS
	options    Options
}

// NewHandler creates a compile-and-serve handler.
// fileSystem is where stylesheets are read from; pathPrefix is the URL
// path prefix to match and strip (e.g. "/assets/css").
func NewHandler(fileSystem fs.FS, pathPrefix string, opts Options) http.Handler {
	opts.FS = fileSystem
	return &Handler{
		pathPrefix: pathPrefix,
		fileSystem: fileSystem,
		options:    opts,
	}
}

func isSassPath(p string) bool {
	return strings.HasSuffix(p, ".scss") || strings.HasSuffix(p, ".sass")
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.pathPrefix != "" && !strings.HasPrefix(r.URL.Path, h.pathPrefix) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if !isSassPath(r.URL.Path) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	sassPath := strings.TrimPrefix(r.URL.Path, h.pathPrefix)
	sassPath = strings.TrimPrefix(sassPath, "/")

	info, err := fs.Stat(h.fileSystem, sassPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	result, err := Compile(Import{Path: sassPath}, h.options)
	if err != nil {
		http.Error(w, "Compilation Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if r.Method != http.MethodHead {
		w.Write([]byte(result.CSS))
	}
}
