package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore writes blobs under a base directory that the app serves
// statically.
type LocalStore struct {
	baseDir string
	baseURL string
}

func NewLocalStore(baseDir, baseURL string) *LocalStore {
	return &LocalStore{baseDir: baseDir, baseURL: baseURL}
}

func (s *LocalStore) Upload(data []byte, folder, publicID string) (string, error) {
	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := publicID + ".png"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return s.baseURL + "/" + folder + "/" + filename, nil
}

// Delete removes a stored blob. A missing file is not an error.
func (s *LocalStore) Delete(folder, publicID string) error {
	err := os.Remove(filepath.Join(s.baseDir, folder, publicID+".png"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}
