//go:build !go1.22

package server

import (
	"io"
	"io/fs"
	"net/http"
)

// serveFileFS serves the named file from fsys. It is a fallback for
// http.ServeFileFS, which requires Go 1.22.
func serveFileFS(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.ServeContent(w, r, name, info.ModTime(), rs)
}
