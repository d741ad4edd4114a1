// Package pages serves .html files from a directory.
//
// Only GET is accepted. The request target is taken as received: "/" maps to
// "/index.html" and anything else, query string included, is joined to the
// root directory without decoding. Files whose extension is not exactly
// ".html" are refused even if they exist.
package pages

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/f4ah6o/htmlserve/internal/log"
)

const (
	// IndexTarget replaces a bare "/" request target.
	IndexTarget = "/index.html"
	// Ext is the only extension that is served.
	Ext = ".html"

	contentType = "text/html"
)

// Options configures a Handler.
type Options struct {
	// Root is the directory files are resolved against.
	Root string
	// Confine reports targets that resolve outside Root as missing.
	// Without it "/../x.html" reads x.html next to Root.
	Confine bool
}

// Handler resolves request targets to files under a root directory.
type Handler struct {
	root    string
	confine bool
}

// New returns a Handler for opts. Root is made absolute once, against the
// current working directory.
func New(opts Options) (*Handler, error) {
	if opts.Root == "" {
		return nil, errors.New("root directory must be set")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", opts.Root, err)
	}
	return &Handler{root: root, confine: opts.Confine}, nil
}

// Root returns the absolute root directory.
func (h *Handler) Root() string {
	return h.root
}

// Target normalizes a raw request target: "/" becomes IndexTarget, everything
// else is returned unchanged.
func Target(raw string) string {
	if raw == "/" {
		return IndexTarget
	}
	return raw
}

// Resolve appends target to root and cleans the result. Dot-dot segments are
// applied, so the result may lie outside root.
func Resolve(root, target string) string {
	return filepath.Clean(root + filepath.FromSlash(target))
}

// Within reports whether p is root or lies below it.
func Within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.RequestURI
	if raw == "" {
		raw = r.URL.RequestURI()
	}
	log.Infof("Request for %s by method %s", raw, r.Method)

	if r.Method != http.MethodGet {
		writePage(w, http.StatusNotImplemented, fmt.Sprintf("<h1>Error 501: %s not supported</h1>", r.Method))
		return
	}

	target := Target(raw)
	path := Resolve(h.root, target)

	if filepath.Ext(path) != Ext {
		writePage(w, http.StatusNotFound, fmt.Sprintf("<h1>Error 404: %s not a HTML file</h1>", target))
		return
	}

	if h.confine && !Within(h.root, path) {
		log.Warnf("Refusing %s: resolves outside %s", target, h.root)
		notFound(w, target)
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		notFound(w, target)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Errorf("Failed to open %s: %v", path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		log.Errorf("Failed to stream %s: %v", path, err)
	}
}

// The "not fount" spelling is part of the response contract.
func notFound(w http.ResponseWriter, target string) {
	writePage(w, http.StatusNotFound, fmt.Sprintf("<h1>Error 404: %s not fount</h1>", target))
}

func writePage(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}
