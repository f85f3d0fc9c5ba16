package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
)

// staticFiles serves the frontend. Paths matching one of the allow-list
// globs are served from dir; every other path gets index.html so client-side
// routes resolve.
type staticFiles struct {
	dir      string
	patterns []string
}

func newStaticFiles(dir string, patterns []string) *staticFiles {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			log.Warn().Str("pattern", p).Msg("ignoring invalid static pattern")
			continue
		}
		valid = append(valid, p)
	}
	return &staticFiles{dir: dir, patterns: valid}
}

func (s *staticFiles) allowed(rel string) bool {
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (s *staticFiles) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.dir == "" {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}

	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if rel != "" && s.allowed(rel) {
		if serveFile(w, r, filepath.Join(s.dir, filepath.FromSlash(rel))) {
			return
		}
	}
	if !serveFile(w, r, filepath.Join(s.dir, "index.html")) {
		writeJSONError(w, http.StatusNotFound, "not found")
	}
}

// serveFile writes the regular file at name and reports whether it existed.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
