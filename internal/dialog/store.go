package dialog

import "sync"

// Store хранит по одной сессии на пользователя. Доступ к сессии
// конкретного пользователя сериализуется его собственным замком:
// медленный сетевой вызов внутри диалога одного пользователя не
// задерживает обработку событий остальных.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	sess Session
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (s *Store) entryFor(userID int64) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		e = &entry{sess: Session{State: StateIdle}}
		s.entries[userID] = e
	}
	return e
}

// Update выполняет fn под замком пользователя и сохраняет возвращённую
// сессию. Пока fn работает, другие события того же пользователя ждут.
func (s *Store) Update(userID int64, fn func(Session) Session) {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess = fn(e.sess)
}

// Get возвращает копию текущей сессии пользователя.
func (s *Store) Get(userID int64) Session {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}
