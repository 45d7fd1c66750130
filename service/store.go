package service

import (
	"context"
	"encoding/json"
	"fmt"

	"festival_portal/docstore"
)

// DocCollection is the slice of the document store the services consume.
// *docstore.Collection satisfies it; tests substitute in-memory fakes.
type DocCollection interface {
	Create(ctx context.Context, data map[string]any) (string, error)
	Get(ctx context.Context, id string) (docstore.Document, error)
	Set(ctx context.Context, id string, data map[string]any) error
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, q docstore.Query) ([]docstore.Document, error)
	Subscribe(q docstore.Query, onChange func([]docstore.Document), onError func(error)) (func(), error)
}

type DocStore interface {
	Collection(name string) DocCollection
}

type storeAdapter struct {
	store *docstore.Store
}

func (a storeAdapter) Collection(name string) DocCollection {
	return a.store.Collection(name)
}

// WrapStore adapts the concrete store to the interface the services accept.
func WrapStore(s *docstore.Store) DocStore {
	return storeAdapter{store: s}
}

// AdminRef identifies the acting admin, supplied by the auth context.
type AdminRef struct {
	ID    string
	Name  string
	Email string
}

func encodeDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return m, nil
}

func decodeDoc(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func encodeValue(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
