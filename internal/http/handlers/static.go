package handlers

import (
	"net/http"
	"path"
	"strings"
)

const imageCacheControl = "public, max-age=3600"

// Images serves files below dir under the /img prefix. Directory listings
// are not exposed; found files carry a one hour public cache header.
func Images(dir string) http.Handler {
	root := http.Dir(dir)
	fileServer := http.StripPrefix("/img", http.FileServer(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/img")
		if name == "" || strings.HasSuffix(name, "/") {
			http.NotFound(w, r)
			return
		}

		f, err := root.Open(path.Clean(name))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		info, err := f.Stat()
		_ = f.Close()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Cache-Control", imageCacheControl)
		fileServer.ServeHTTP(w, r)
	})
}
