package chart

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filePrefix      = "chart_"
	fileExt         = ".png"
	maxNameAttempts = 5
)

// Artifact describes a rendered chart image. It is never mutated after
// CreateChart returns it.
type Artifact struct {
	Filename  string    `json:"filename"`
	Dir       string    `json:"-"`
	Kind      Kind      `json:"-"`
	Title     string    `json:"title"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// Path returns the location of the image on disk.
func (a *Artifact) Path() string {
	return filepath.Join(a.Dir, a.Filename)
}

// NewFilename returns "chart_" plus eight random hex characters.
func NewFilename() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return filePrefix + id[:8] + fileExt
}

// IsArtifactName reports whether name looks like a file produced by the engine.
func IsArtifactName(name string) bool {
	return strings.HasPrefix(name, filePrefix) && strings.HasSuffix(name, fileExt) &&
		len(name) == len(filePrefix)+8+len(fileExt)
}

// persist streams the image into a temp file inside dir and links it under a
// fresh artifact name. The temp file is always removed, so a failed write
// leaves nothing behind and an existing artifact is never overwritten.
func persist(dir string, write func(io.Writer) error) (string, error) {
	tmp, err := os.CreateTemp(dir, ".chart-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := NewFilename()
		dst := filepath.Join(dir, name)
		err := os.Link(tmpName, dst)
		if err == nil {
			return name, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		// hard links are unavailable on some filesystems
		if _, statErr := os.Lstat(dst); !errors.Is(statErr, fs.ErrNotExist) {
			continue
		}
		if err := os.Rename(tmpName, dst); err != nil {
			return "", fmt.Errorf("move artifact into place: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("no free artifact name after %d attempts", maxNameAttempts)
}
