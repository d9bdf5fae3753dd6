package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"notegraph/internal/ingest"
)

// MaxFileBytes bounds a single inbox file.
const MaxFileBytes = 10 << 20

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
}

var textTypes = map[string]struct{}{
	".txt":      {},
	".md":       {},
	".markdown": {},
}

// Supported reports whether Load understands the file's extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageTypes[ext]; ok {
		return true
	}
	_, ok := textTypes[ext]
	return ok
}

// Scan expands doublestar patterns ("notes/**/*.png") into the supported files
// they match. Hidden directories are skipped. The result is sorted and has no
// duplicates.
func Scan(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		for _, m := range matches {
			if hiddenUnder(filepath.FromSlash(base), m) || !Supported(m) {
				continue
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Load reads path into an ingest request. Image files become the image
// scenario and text files the text scenario.
func Load(path string) (ingest.Request, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, isImage := imageTypes[ext]
	if _, isText := textTypes[ext]; !isImage && !isText {
		return ingest.Request{}, fmt.Errorf("unsupported file type %q", ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return ingest.Request{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxFileBytes {
		return ingest.Request{}, fmt.Errorf("%s is %d bytes, limit is %d", path, info.Size(), MaxFileBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Request{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isImage {
		return ingest.Request{ImageBytes: data, MimeType: mime, ImageName: filepath.Base(path)}, nil
	}
	return ingest.Request{TextContent: string(data)}, nil
}

// hiddenUnder reports whether path has a dot-prefixed element below root.
func hiddenUnder(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return hidden(rel)
}

func hidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
