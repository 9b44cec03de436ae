package dialog

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ravel57/grosze-bot/internal/domain"
)

// memStore backs all three store interfaces for engine tests, mirroring the
// SQL semantics: unique telegram id, unique (owner, contact) pair, append
// only transfers.
type memStore struct {
	mu        sync.Mutex
	users     map[int64]*domain.User
	byTG      map[int64]int64
	contacts  []*domain.Contact
	transfers []domain.Transfer
	nextID    int64
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[int64]*domain.User),
		byTG:  make(map[int64]int64),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) Upsert(ctx context.Context, telegramID int64, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byTG[telegramID]; ok {
		u := s.users[id]
		u.Username = username
		return *u, nil
	}
	u := &domain.User{ID: s.id(), TelegramID: telegramID, Username: username, Status: domain.StatusNone}
	s.users[u.ID] = u
	s.byTG[telegramID] = u.ID
	return *u, nil
}

func (s *memStore) ByTelegramID(ctx context.Context, telegramID int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byTG[telegramID]; ok {
		return *s.users[id], nil
	}
	return domain.User{}, fmt.Errorf("telegram id %d: %w", telegramID, domain.ErrNotFound)
}

func (s *memStore) ByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func (s *memStore) ByID(ctx context.Context, id int64) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return *u, nil
	}
	return domain.User{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (s *memStore) SetStatus(ctx context.Context, userID int64, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].Status = status
	return nil
}

func (s *memStore) SetSelectedContact(ctx context.Context, userID, contactUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].SelectedContactID = &contactUserID
	return nil
}

func (s *memStore) SetDirection(ctx context.Context, userID int64, d domain.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].SelectedDirection = &d
	return nil
}

func (s *memStore) ClearSelections(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].SelectedContactID = nil
	s.users[userID].SelectedDirection = nil
	return nil
}

func (s *memStore) FindOrCreate(ctx context.Context, ownerID, contactUserID int64) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.OwnerID == ownerID && c.ContactUserID == contactUserID {
			c.Active = true
			return s.view(c), nil
		}
	}
	c := &domain.Contact{ID: s.id(), OwnerID: ownerID, ContactUserID: contactUserID, Active: true}
	s.contacts = append(s.contacts, c)
	return s.view(c), nil
}

func (s *memStore) Rename(ctx context.Context, ownerID, contactUserID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.OwnerID == ownerID && c.ContactUserID == contactUserID {
			c.Name = &name
			return nil
		}
	}
	return fmt.Errorf("contact (%d,%d): %w", ownerID, contactUserID, domain.ErrNotFound)
}

func (s *memStore) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Contact
	for _, c := range s.contacts {
		if c.OwnerID == ownerID && c.Active {
			out = append(out, s.view(c))
		}
	}
	return out, nil
}

func (s *memStore) ResolveDisplayName(ctx context.Context, ownerID int64, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.OwnerID == ownerID && c.Active && s.view(c).DisplayName() == name {
			return c.ContactUserID, nil
		}
	}
	return 0, fmt.Errorf("contact %q: %w", name, domain.ErrNotFound)
}

func (s *memStore) DisplayNames(ctx context.Context, ownerID int64) (map[int64]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make(map[int64]string)
	for _, c := range s.contacts {
		if c.OwnerID == ownerID {
			names[c.ContactUserID] = s.view(c).DisplayName()
		}
	}
	return names, nil
}

func (s *memStore) Deactivate(ctx context.Context, ownerID, contactUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts {
		if c.OwnerID == ownerID && c.ContactUserID == contactUserID {
			c.Active = false
			return nil
		}
	}
	return fmt.Errorf("contact (%d,%d): %w", ownerID, contactUserID, domain.ErrNotFound)
}

func (s *memStore) Create(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal) (domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.Transfer{ID: s.id(), FromUserID: fromUserID, ToUserID: toUserID, Amount: amount}
	s.transfers = append(s.transfers, t)
	return t, nil
}

func (s *memStore) ListInvolving(ctx context.Context, userID int64) ([]domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transfer
	for _, t := range s.transfers {
		if t.FromUserID == userID || t.ToUserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// view resolves the contact's fallback username the way the SQL join does.
func (s *memStore) view(c *domain.Contact) domain.Contact {
	out := *c
	if u, ok := s.users[c.ContactUserID]; ok {
		out.ContactUsername = u.Username
	}
	return out
}
