package shops

import (
	"fmt"
	"sync"
)

// Store — контракт персистентности реестра.
type Store interface {
	Load() ([]Shop, error)
	Save([]Shop) error
}

// Registry — упорядоченный список магазинов, уникальных по имени.
// Изменения сериализуются и сохраняются после каждой мутации; если
// запись не удалась, реестр в памяти остаётся прежним.
type Registry struct {
	mu    sync.Mutex
	store Store
	items []Shop
}

// Load читает сохранённые магазины и возвращает готовый реестр.
func Load(store Store) (*Registry, error) {
	items, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Registry{store: store, items: items}, nil
}

func (r *Registry) Add(name, apiKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.items {
		if s.Name == name {
			return fmt.Errorf("%q: %w", name, ErrDuplicate)
		}
	}
	next := append(append([]Shop(nil), r.items...), Shop{Name: name, APIKey: apiKey})
	if err := r.store.Save(next); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	r.items = next
	return nil
}

func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, s := range r.items {
		if s.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	next := append(append([]Shop(nil), r.items[:idx]...), r.items[idx+1:]...)
	if err := r.store.Save(next); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	r.items = next
	return nil
}

// List возвращает магазины в порядке добавления.
func (r *Registry) List() []Shop {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Shop(nil), r.items...)
}

func (r *Registry) FindByName(name string) (Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.items {
		if s.Name == name {
			return s, nil
		}
	}
	return Shop{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}
