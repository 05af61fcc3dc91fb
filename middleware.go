package sass

import (
	"io/fs"
	"net/http"

	"github.com/sassgo/sass/internal/strings"
)

// NewMiddleware creates an HTTP middleware that compiles Sass stylesheets
// on the fly: requests under basePath ending in `.scss`/`.sass` are
// compiled and served as CSS, everything else passes to the next handler.
//
// Example with chi:
//
//	r.Use(sass.NewMiddleware("/assets/css", os.DirFS("./assets/css"), sass.Options{}))
func NewMiddleware(basePath string, fileSystem fs.FS, opts Options) func(http.Handler) http.Handler {
	handler := NewHandler(fileSystem, basePath, opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(r.URL.Path, basePath) || !isSassPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			handler.ServeHTTP(w, r)
		})
	}
}
