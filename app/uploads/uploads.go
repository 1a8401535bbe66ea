package uploads

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// Saver writes uploaded files into a directory and hands back the public
// URL path the post stores as its attachment reference.
type Saver struct {
	dir string
}

// NewSaver creates the upload directory if needed and returns a Saver
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	return &Saver{dir: dir}, nil
}

// Dir returns the directory uploads are written to
func (s *Saver) Dir() string {
	return s.dir
}

// Save stores one uploaded file under a collision-resistant name and returns
// its public path. Only the original extension is kept.
func (s *Saver) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d-%d%s", time.Now().UnixNano(), rand.Intn(1_000_000_000), filepath.Ext(header.Filename))

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write upload: %v", err)
	}

	return "/uploads/" + name, nil
}
