package services

import (
	"errors"
	"slices"
	"strings"
	"sync"
)

// ErrInvalidUser is returned by Create for a missing name or email.
var ErrInvalidUser = errors.New("services: user name and email are required")

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStore is an in-memory user repository, safe for concurrent use.
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewUserStore() *UserStore {
	s := &UserStore{users: make(map[int]User), nextID: 1}
	_, _ = s.Create("Ada Lovelace", "ada@example.com")
	return s
}

// All returns the users ordered by id.
func (s *UserStore) All() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	slices.SortFunc(out, func(a, b User) int { return a.ID - b.ID })
	return out
}

func (s *UserStore) Find(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) Create(name, email string) (User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return User{}, ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u := User{ID: s.nextID, Name: name, Email: email}
	s.users[u.ID] = u
	s.nextID++
	return u, nil
}
