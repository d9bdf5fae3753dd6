// Package blobstore keeps original note images on the local filesystem.
package blobstore

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"notegraph/internal/contextutil"
)

// PathPrefix is where Handler expects to be mounted.
const PathPrefix = "/blobs/"

// Local implements ingest.BlobStore over a directory.
type Local struct {
	dir           string
	publicBaseURL string
}

// NewLocal creates the directory if needed. publicBaseURL is prepended to the
// returned URLs; an empty value yields root-relative URLs.
func NewLocal(dir, publicBaseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Local{dir: dir, publicBaseURL: strings.TrimSuffix(publicBaseURL, "/")}, nil
}

// Dir returns the root directory.
func (l *Local) Dir() string {
	return l.dir
}

// Put writes data as <dir>/<owner>/<uuid><ext> and returns its public URL.
func (l *Local) Put(ctx context.Context, owner, name, mimeType string, data []byte) (string, error) {
	if !validSegment(owner) {
		return "", fmt.Errorf("invalid owner %q for blob path", owner)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ownerDir := filepath.Join(l.dir, owner)
	if err := os.MkdirAll(ownerDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	file := uuid.New().String() + extension(name, mimeType)
	path := filepath.Join(ownerDir, file)

	// Write to a temp file first so readers never see a partial blob.
	tmp, err := os.CreateTemp(ownerDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store blob: %w", err)
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "stored blob", "path", path, "bytes", len(data))
	return l.publicBaseURL + PathPrefix + url.PathEscape(owner) + "/" + file, nil
}

// Handler serves stored blobs. Mount it at PathPrefix.
func (l *Local) Handler() http.Handler {
	return http.StripPrefix(PathPrefix, http.FileServer(noListing{http.Dir(l.dir)}))
}

// extension prefers the client file name and falls back to the mime type.
func extension(name, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" && validSegment(ext[1:]) {
		return ext
	}
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`) && !strings.ContainsRune(s, 0)
}

// noListing hides directory indexes.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
