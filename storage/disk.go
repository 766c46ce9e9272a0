package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type DiskStorage struct {
	// BasePath is a directory that is writable by the current process
	BasePath  string
	BaseURL   string
	dirs      map[string]bool
	dirsMutex sync.Mutex
}

func NewDiskStorage(basePath, baseURL string) *DiskStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &DiskStorage{
		BasePath: basePath,
		BaseURL:  baseURL,
		dirs:     make(map[string]bool, 10),
	}
}

func (s *DiskStorage) createDir(dir string) error {
	s.dirsMutex.Lock()
	defer s.dirsMutex.Unlock()

	if ok := s.dirs[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	s.dirs[dir] = true
	return nil
}

func (s *DiskStorage) getFullPath(path string) string {
	return filepath.Join(s.BasePath, filepath.FromSlash(filepath.Clean("/"+path)))
}

func (s *DiskStorage) Save(path, mimeType string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := s.createDir(filepath.Dir(fileName)); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *DiskStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	http.ServeFile(writer, request, s.getFullPath(path))
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}

func (s *DiskStorage) URL(path string) string {
	return s.BaseURL + strings.TrimPrefix(path, "/")
}
