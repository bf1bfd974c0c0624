package service_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// memStore — потокобезопасное хранилище в памяти с уникальностью email,
// как у уникального индекса в настоящей базе.
type memStore struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]models.User
	emails map[string]string

	// onLookup вызывается перед GetByEmail, чтобы выстроить гонку в тесте
	onLookup func()
}

func newMemStore() *memStore {
	return &memStore{
		byID:   make(map[string]models.User),
		emails: make(map[string]string),
	}
}

func (s *memStore) Create(_ context.Context, name, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[email]; ok {
		return models.User{}, serr.ErrAlreadyExists
	}
	s.seq++
	u := models.User{ID: strconv.Itoa(s.seq), Name: name, Email: email, PasswordHash: passwordHash}
	s.byID[u.ID] = u
	s.emails[email] = u.ID

	u.PasswordHash = ""
	return u, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (models.User, error) {
	if s.onLookup != nil {
		s.onLookup()
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *memStore) GetByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	return models.User{Name: u.Name, Email: u.Email}, nil
}

func (s *memStore) GetPasswordHash(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return "", serr.ErrNotFound
	}
	return u.PasswordHash, nil
}

func (s *memStore) EmailTakenByOther(_ context.Context, email, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.emails[email]
	return ok && id != excludeID, nil
}

func (s *memStore) UpdateProfile(_ context.Context, id, name, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return models.User{}, serr.ErrNotFound
	}
	if owner, taken := s.emails[email]; taken && owner != id {
		return models.User{}, serr.ErrAlreadyExists
	}
	delete(s.emails, u.Email)
	u.Name, u.Email = name, email
	s.byID[id] = u
	s.emails[email] = id

	return models.User{Name: name, Email: email}, nil
}

func (s *memStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return serr.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.byID[id] = u
	return nil
}
