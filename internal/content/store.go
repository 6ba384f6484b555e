package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is returned when a document does not exist in the store
var ErrNotFound = errors.New("document not found")

// Store fetches raw documents by file name
type Store interface {
	// Fetch returns the full text of file
	Fetch(ctx context.Context, file string) (string, error)
	// List returns the candidate file names, in no particular order
	List(ctx context.Context) ([]string, error)
}

// Open picks a store for location: an http(s) base URL or a local path.
// A non-empty files list replaces directory listing.
func Open(location string, files []string, timeout time.Duration) (Store, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPStore(location, files, timeout)
	}
	return NewDirStore(location, files)
}

// ============================================================================
// Directory store
// ============================================================================

// DirStore reads markdown files below a root directory
type DirStore struct {
	root  string
	files []string
}

// NewDirStore creates a store rooted at dir
func NewDirStore(dir string, files []string) (*DirStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path error: %s is not a directory", abs)
	}
	return &DirStore{root: abs, files: files}, nil
}

// Root returns the absolute content directory
func (s *DirStore) Root() string {
	return s.root
}

// Path returns the filesystem path of file
func (s *DirStore) Path(file string) string {
	return filepath.Join(s.root, filepath.FromSlash(file))
}

// Fetch reads file from disk
func (s *DirStore) Fetch(ctx context.Context, file string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !filepath.IsLocal(filepath.FromSlash(file)) {
		return "", fmt.Errorf("%s: %w", file, ErrNotFound)
	}
	data, err := os.ReadFile(s.Path(file))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", file, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// List walks the root for .md files unless a fixed list was configured
func (s *DirStore) List(ctx context.Context) ([]string, error) {
	if len(s.files) > 0 {
		return s.files, nil
	}

	var files []string
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			if path != s.root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(path) {
			rel, err := filepath.Rel(s.root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isMarkdown(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".md")
}

// ============================================================================
// HTTP store
// ============================================================================

// HTTPStore fetches documents from <base>/<file>
type HTTPStore struct {
	base   *url.URL
	files  []string
	client *http.Client
}

// NewHTTPStore creates a store for base. Discovery needs an explicit file
// list since HTTP offers no directory listing.
func NewHTTPStore(base string, files []string, timeout time.Duration) (*HTTPStore, error) {
	u, err := url.Parse(strings.TrimSuffix(base, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid content url: %w", err)
	}
	return &HTTPStore{
		base:   u,
		files:  files,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPStore) fileURL(file string) string {
	return s.base.JoinPath(strings.Split(file, "/")...).String()
}

// Fetch GETs file
func (s *HTTPStore) Fetch(ctx context.Context, file string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.fileURL(file), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", file, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", file, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", file, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", file, err)
	}
	return string(data), nil
}

// List HEADs every configured file and returns the ones that exist
func (s *HTTPStore) List(ctx context.Context) ([]string, error) {
	if len(s.files) == 0 {
		return nil, errors.New("http content needs a files list")
	}

	var found []string
	for _, file := range s.files {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.fileURL(file), nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("content file %s not accessible, skipping: %v", file, err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			log.Printf("content file %s not found (%d), skipping", file, resp.StatusCode)
			continue
		}
		found = append(found, file)
	}
	return found, nil
}
