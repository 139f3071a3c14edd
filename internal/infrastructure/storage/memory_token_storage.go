package storage

import "sync"

// MemoryTokenStorage token en memoria del proceso (tests, sesiones efímeras).
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStorage(initial string) *MemoryTokenStorage {
	return &MemoryTokenStorage{token: initial}
}

func (s *MemoryTokenStorage) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryTokenStorage) Save(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryTokenStorage) Clear() error {
	return s.Save("")
}
