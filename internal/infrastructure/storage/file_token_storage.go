package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// snapshot formato del archivo de sesión. Es también el "estado de almacenamiento"
// que los tests e2e guardan una vez y reutilizan entre escenarios.
type snapshot struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// FileTokenStorage persiste el token en un archivo JSON (0600). Lo usa limsctl.
type FileTokenStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

// Path ubicación del archivo.
func (s *FileTokenStorage) Path() string { return s.path }

func (s *FileTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: leer %s: %w", s.path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return "", fmt.Errorf("storage: archivo de sesión corrupto: %w", err)
	}
	return snap.Token, nil
}

func (s *FileTokenStorage) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("storage: crear %s: %w", dir, err)
		}
	}
	raw, err := json.MarshalIndent(snapshot{Token: token, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("storage: escribir sesión: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Clear borra el archivo; no falla si no existe.
func (s *FileTokenStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar sesión: %w", err)
	}
	return nil
}
