package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store abstracts the blob backend so services can be tested against an
// in-memory implementation.
type Store interface {
	Save(key string, data []byte) error
	Read(key string) ([]byte, error)
	Path(key string) (string, error)
	Delete(key string) error
	// UsedByOwner sums the sizes of every blob namespaced by the given
	// owner id. This scan is the quota accountant: it is a point-in-time
	// figure, and concurrent uploads may both pass the check.
	UsedByOwner(ownerID uint) (int64, error)
	TotalUsed() (int64, error)
}

// NewKey derives a storage key for an owner's blob: a fresh random id,
// the owner id, and the original extension (".bin" when absent). The
// owner id suffix is what UsedByOwner globs on.
func NewKey(ownerID uint, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || ext == "." {
		ext = ".bin"
	}
	return fmt.Sprintf("%s_%d%s", uuid.New().String(), ownerID, ext)
}

// Disk stores blobs as whole files under a single directory.
type Disk struct {
	basePath string
}

func NewDisk(basePath string) (*Disk, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory failed: %w", err)
	}
	return &Disk{basePath: basePath}, nil
}

func (d *Disk) Save(key string, data []byte) error {
	return os.WriteFile(filepath.Join(d.basePath, key), data, 0o644)
}

func (d *Disk) Read(key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.basePath, key))
}

func (d *Disk) Path(key string) (string, error) {
	abs := filepath.Join(d.basePath, key)
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

func (d *Disk) Delete(key string) error {
	err := os.Remove(filepath.Join(d.basePath, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (d *Disk) UsedByOwner(ownerID uint) (int64, error) {
	return d.sumGlob(fmt.Sprintf("*_%d.*", ownerID))
}

func (d *Disk) TotalUsed() (int64, error) {
	return d.sumGlob("*")
}

func (d *Disk) sumGlob(pattern string) (int64, error) {
	matches, err := filepath.Glob(filepath.Join(d.basePath, pattern))
	if err != nil {
		return 0, err
	}

	var total int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		total += info.Size()
	}
	return total, nil
}
