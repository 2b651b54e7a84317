package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ekazarova/rolodex/internal/common"
	"github.com/ekazarova/rolodex/internal/fakenet"
	"github.com/ekazarova/rolodex/internal/logging"
	"github.com/ekazarova/rolodex/internal/models"
	"github.com/ekazarova/rolodex/internal/repositories/contacts"
	"github.com/ekazarova/rolodex/internal/search"
)

// ContactService is the CRUD+search facade over the persisted contact
// collection.
//
// Reads (List, Get) are keyed through the latency gate so repeated identical
// queries skip the simulated delay and concurrent identical queries
// coalesce. Mutations run unkeyed — which also invalidates the gate's seen
// keys — and are serialized, so a read-modify-write cycle is never
// interleaved with another mutation.
type ContactService interface {
	List(ctx context.Context, query string) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context) (*models.Contact, error)
	Update(ctx context.Context, id string, patch models.ContactPatch) (*models.Contact, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type contactService struct {
	repo contacts.Repository
	gate *fakenet.Gate
	log  logging.Logger

	// writeMu serializes mutations across their full load-modify-save
	// cycle, including the simulated delay.
	writeMu sync.Mutex

	// seams for deterministic tests
	now   func() time.Time
	newID func() string
}

func NewContactService(repo contacts.Repository, gate *fakenet.Gate, log logging.Logger) ContactService {
	return &contactService{
		repo:  repo,
		gate:  gate,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// List returns the collection in ascending CreatedAt order; a non-empty
// query narrows and reorders it by relevance.
func (s *contactService) List(ctx context.Context, query string) ([]models.Contact, error) {
	return fakenet.Do(ctx, s.gate, "list:"+query, func(ctx context.Context) ([]models.Contact, error) {
		collection, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list contacts: %w", err)
		}
		sortByCreatedAt(collection)
		if query == "" {
			return collection, nil
		}
		return search.Rank(collection, query), nil
	})
}

// Get returns the contact with the given id, or common.ErrNotFound.
func (s *contactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	return fakenet.Do(ctx, s.gate, "get:"+id, func(ctx context.Context) (*models.Contact, error) {
		collection, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get contact: %w", err)
		}
		for i := range collection {
			if collection[i].ID == id {
				c := collection[i]
				return &c, nil
			}
		}
		return nil, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
	})
}

// Create prepends a blank contact with a fresh id and timestamp and
// persists the collection.
func (s *contactService) Create(ctx context.Context) (*models.Contact, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return fakenet.Do(ctx, s.gate, "", func(ctx context.Context) (*models.Contact, error) {
		collection, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}

		contact := models.Contact{ID: s.newID(), CreatedAt: s.now()}
		collection = append([]models.Contact{contact}, collection...)

		if err := s.repo.SaveAll(ctx, collection); err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
		s.log.Debug(ctx, "contact created", "id", contact.ID)
		return &contact, nil
	})
}

// Update merges patch over the stored contact and persists the collection.
// Fields not present in patch are untouched.
func (s *contactService) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.Contact, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return fakenet.Do(ctx, s.gate, "", func(ctx context.Context) (*models.Contact, error) {
		collection, err := s.repo.LoadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}

		idx := -1
		for i := range collection {
			if collection[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
		}

		collection[idx].Apply(patch)

		if err := s.repo.SaveAll(ctx, collection); err != nil {
			return nil, fmt.Errorf("failed to update contact: %w", err)
		}
		updated := collection[idx]
		s.log.Debug(ctx, "contact updated", "id", id)
		return &updated, nil
	})
}

// Delete removes the contact if present and reports whether it did. A
// missing id is not an error; nothing is written in that case.
func (s *contactService) Delete(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return fakenet.Do(ctx, s.gate, "", func(ctx context.Context) (bool, error) {
		collection, err := s.repo.LoadAll(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to delete contact: %w", err)
		}

		idx := -1
		for i := range collection {
			if collection[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false, nil
		}

		collection = append(collection[:idx], collection[idx+1:]...)
		if err := s.repo.SaveAll(ctx, collection); err != nil {
			return false, fmt.Errorf("failed to delete contact: %w", err)
		}
		s.log.Debug(ctx, "contact deleted", "id", id)
		return true, nil
	})
}

func sortByCreatedAt(collection []models.Contact) {
	sort.SliceStable(collection, func(i, j int) bool {
		return collection[i].CreatedAt.Before(collection[j].CreatedAt)
	})
}
