// Package cache manages the on-disk KJV verse cache: its directory layout,
// preloading from a remote or local source, and the manifest describing
// what is cached.
package cache

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/biblec/biblec/internal/verse"
)

// DefaultKJVSource is the upstream KJV JSON fetched by Preload when no
// source is given.
const DefaultKJVSource = "https://raw.githubusercontent.com/thiagobodruk/bible/master/json/en_kjv.json"

// Paths locates the cache on disk.
type Paths struct {
	Root         string
	KJVDir       string
	VersesPath   string
	ManifestPath string
}

// Manifest records what the verse cache holds.
type Manifest struct {
	Translation string `json:"translation"`
	Source      string `json:"source"`
	CreatedAt   string `json:"created_at"`
	VerseCount  int    `json:"verse_count"`
}

// NewPaths derives cache paths from root; an empty root falls back to
// ~/.biblec (or the working directory when no home is known).
func NewPaths(root string) Paths {
	if root == "" {
		root = defaultRoot()
	}
	kjvDir := filepath.Join(root, "translations", "kjv")
	return Paths{
		Root:         root,
		KJVDir:       kjvDir,
		VersesPath:   filepath.Join(kjvDir, "verses.jsonl"),
		ManifestPath: filepath.Join(kjvDir, "manifest.json"),
	}
}

func defaultRoot() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".biblec")
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// Preload fetches the KJV from source (URL, file:// URL, or local path),
// normalizes it, and writes the JSONL cache plus manifest. It returns the
// verse count.
func (p Paths) Preload(source string) (int, error) {
	if err := os.MkdirAll(p.KJVDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", p.KJVDir, err)
	}
	if source == "" {
		source = DefaultKJVSource
	}

	raw, err := readSource(source)
	if err != nil {
		return 0, err
	}
	verses, err := normalizeSource(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing KJV source from %s: %w", source, err)
	}

	if err := writeJSONL(p.VersesPath, verses); err != nil {
		return 0, err
	}
	if err := p.writeManifest(source, len(verses)); err != nil {
		return 0, err
	}
	return len(verses), nil
}

// ReadManifest loads the manifest if present.
func (p Paths) ReadManifest() (Manifest, bool) {
	raw, err := os.ReadFile(p.ManifestPath)
	if err != nil {
		return Manifest{}, false
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, false
	}
	return m, true
}

func (p Paths) writeManifest(source string, count int) error {
	m := Manifest{
		Translation: "KJV",
		Source:      source,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		VerseCount:  count,
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.ManifestPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing manifest to %s: %w", p.ManifestPath, err)
	}
	return nil
}

func readSource(source string) (string, error) {
	trimmed := strings.TrimSpace(source)

	if path, ok := strings.CutPrefix(trimmed, "file://"); ok {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(raw), nil
	}

	if _, err := os.Stat(trimmed); err == nil {
		raw, err := os.ReadFile(trimmed)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", trimmed, err)
		}
		return string(raw), nil
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		resp, err := http.Get(trimmed)
		if err != nil {
			return "", fmt.Errorf("downloading %s: %w", trimmed, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("reading response body: %w", err)
		}
		return string(raw), nil
	}

	return "", fmt.Errorf("unsupported source: %s", source)
}

func writeJSONL(path string, verses []verse.Verse) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, v := range verses {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return w.Flush()
}
