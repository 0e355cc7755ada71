// Package localfs backs the upload and export sides of the document
// pipeline with plain files: it opens files picked for upload and keeps
// downloaded export blobs under one directory.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bersekolah/beswanadmin/internal/core/domain"
	"github.com/bersekolah/beswanadmin/internal/core/ports"
)

// Files reads local files picked for upload. Paths are taken as given;
// the catalog's format/size rules are enforced a layer up.
type Files struct{}

var _ ports.FileSource = Files{}

func (Files) Stat(path string) (domain.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileInfo{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return domain.FileInfo{}, fmt.Errorf("stat file: %s is a directory", path)
	}
	return domain.FileInfo{
		Name: filepath.Base(path),
		Path: path,
		Size: info.Size(),
	}, nil
}

func (Files) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// ExportDir persists export blobs under one base directory.
type ExportDir struct {
	basePath string
}

var _ ports.ExportSink = (*ExportDir)(nil)

func NewExportDir(basePath string) (*ExportDir, error) {
	if basePath == "" {
		basePath = "./exports"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &ExportDir{basePath: basePath}, nil
}

func (d *ExportDir) Save(_ context.Context, name string, data io.Reader) (string, error) {
	path := filepath.Join(d.basePath, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
