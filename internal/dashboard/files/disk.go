// Package files is the file storage collaborator for task attachments.
// Uploads land under a local directory and are addressed by a stable path
// string that callers store verbatim.
package files

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/deskboardhq/deskboard/pkg/idx"
)

// Storage accepts a binary upload and returns a stable retrievable path.
type Storage interface {
	Save(filename string, r io.Reader) (string, error)
}

// DiskStorage writes uploads to a directory on local disk. Stored names
// are ULIDs, so uploads never collide and the original filename can't
// traverse the tree; only its extension is kept.
type DiskStorage struct {
	Dir          string
	PublicPrefix string // e.g. "/uploads"
}

func NewDiskStorage(dir, publicPrefix string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("files: create upload dir: %w", err)
	}
	return &DiskStorage{Dir: dir, PublicPrefix: publicPrefix}, nil
}

// Save streams r to disk and returns the public path of the stored file.
func (d *DiskStorage) Save(filename string, r io.Reader) (string, error) {
	name := idx.New().String() + sanitizeExt(filename)

	f, err := os.Create(filepath.Join(d.Dir, name))
	if err != nil {
		return "", fmt.Errorf("files: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("files: write: %w", err)
	}

	return path.Join(d.PublicPrefix, name), nil
}

func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	if len(ext) > 10 {
		return ""
	}
	return ext
}
