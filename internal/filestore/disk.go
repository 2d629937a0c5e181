package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Sughanthan-A-K/hotel-listing-fullstack/internal/adapters/observability"
)

// Disk stores uploads as plain files under a single directory.
type Disk struct{ dir string }

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir is the directory uploads live in, for static serving.
func (d *Disk) Dir() string { return d.dir }

func (d *Disk) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	name := genName(originalName)
	f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	observability.ObserveFile("disk", "save")
	return publicPrefix + name, nil
}

func (d *Disk) Remove(_ context.Context, publicPath string) error {
	name := objectName(publicPath)
	if name == "" || name == publicPath {
		// Not one of ours; nothing to remove.
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, filepath.Base(name)))
	if os.IsNotExist(err) {
		return nil
	}
	if err == nil {
		observability.ObserveFile("disk", "remove")
	}
	return err
}
