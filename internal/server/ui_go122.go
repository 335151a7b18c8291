//go:build go1.22

package server

import (
	"io/fs"
	"net/http"
)

// serveFileFS serves the named file from fsys.
func serveFileFS(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	http.ServeFileFS(w, r, fsys, name)
}
