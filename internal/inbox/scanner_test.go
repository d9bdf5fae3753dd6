package inbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), []byte("# A"))
	writeFile(t, filepath.Join(dir, "photos", "page1.PNG"), []byte{0x89, 'P', 'N', 'G'})
	writeFile(t, filepath.Join(dir, "photos", "deep", "page2.jpg"), []byte{0xff, 0xd8})
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("plain"))
	writeFile(t, filepath.Join(dir, "data.csv"), []byte("a,b"))
	writeFile(t, filepath.Join(dir, ".obsidian", "cache.md"), []byte("skip"))

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "recursive glob",
			patterns: []string{filepath.Join(dir, "**", "*")},
			want: []string{
				filepath.Join(dir, "a.md"),
				filepath.Join(dir, "notes.txt"),
				filepath.Join(dir, "photos", "deep", "page2.jpg"),
				filepath.Join(dir, "photos", "page1.PNG"),
			},
		},
		{
			name:     "single level",
			patterns: []string{filepath.Join(dir, "*.md")},
			want:     []string{filepath.Join(dir, "a.md")},
		},
		{
			name:     "overlapping patterns are de-duplicated",
			patterns: []string{filepath.Join(dir, "*.md"), filepath.Join(dir, "**", "*.md")},
			want:     []string{filepath.Join(dir, "a.md")},
		},
		{
			name:     "no match",
			patterns: []string{filepath.Join(dir, "*.heic")},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan(tt.patterns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_InvalidPattern(t *testing.T) {
	_, err := Scan([]string{"notes/[a-"})
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "page.jpeg")
	txt := filepath.Join(dir, "idea.md")
	writeFile(t, img, []byte{0xff, 0xd8, 0xff})
	writeFile(t, txt, []byte("# Idea\n\nship it"))

	req, err := Load(img)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, req.ImageBytes)
	assert.Equal(t, "image/jpeg", req.MimeType)
	assert.Equal(t, "page.jpeg", req.ImageName)
	assert.Empty(t, req.TextContent)

	req, err = Load(txt)
	require.NoError(t, err)
	assert.Equal(t, "# Idea\n\nship it", req.TextContent)
	assert.Nil(t, req.ImageBytes)

	_, err = Load(filepath.Join(dir, "table.csv"))
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = Load(filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/c.WEBP"))
	assert.True(t, Supported("readme.markdown"))
	assert.False(t, Supported("archive.zip"))
	assert.False(t, Supported("noext"))
}
