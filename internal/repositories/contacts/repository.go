// Package contacts implements the persistent record table: the contact
// collection stored as a single versioned blob under a fixed namespace.
//
// Three backends are provided — sqlite (local profile database, the
// default), postgres (shared self-hosted rolodex) and s3 (object-store
// profile). All of them satisfy Repository, so the services layer is
// indifferent to which one is injected.
package contacts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ekazarova/rolodex/internal/models"
)

// CollectionName is the fixed namespace the blob is stored under.
const CollectionName = "contacts"

// collectionVersion tags the persisted blob format.
const collectionVersion = 1

// Repository is the durable store for the whole contact collection.
//
// LoadAll returns an empty (non-nil error-free) collection when nothing has
// been stored yet. SaveAll replaces the stored collection in one atomic
// write: a concurrent LoadAll never observes a partial state. Persisted
// order is insertion order (index 0 = most recently created).
type Repository interface {
	LoadAll(ctx context.Context) ([]models.Contact, error)
	SaveAll(ctx context.Context, collection []models.Contact) error
}

// collectionBlob is the on-disk envelope.
type collectionBlob struct {
	Version  int              `json:"version"`
	Contacts []models.Contact `json:"contacts"`
}

func encodeCollection(collection []models.Contact) ([]byte, error) {
	if collection == nil {
		collection = []models.Contact{}
	}
	data, err := json.Marshal(collectionBlob{Version: collectionVersion, Contacts: collection})
	if err != nil {
		return nil, fmt.Errorf("failed to encode collection: %w", err)
	}
	return data, nil
}

func decodeCollection(data []byte) ([]models.Contact, error) {
	if len(data) == 0 {
		return []models.Contact{}, nil
	}
	var blob collectionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}
	if blob.Contacts == nil {
		return []models.Contact{}, nil
	}
	return blob.Contacts, nil
}
