package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"festival_portal/docstore"
)

// capability describes how much of the query surface a fake collection
// accepts, mirroring the degradation ladder the real store can fall down.
type capability int

const (
	capFull capability = iota
	capNoComposite
	capNoFilters
	capNone
)

type fakeSubscriber struct {
	query    docstore.Query
	onChange func([]docstore.Document)
	onError  func(error)
}

type fakeCollection struct {
	mu      sync.Mutex
	docs    map[string]map[string]any
	order   []string
	cap     capability
	seq     int
	nextSub int
	subs    map[int]fakeSubscriber
}

func newFakeCollection(level capability) *fakeCollection {
	return &fakeCollection{
		docs: make(map[string]map[string]any),
		cap:  level,
		subs: make(map[int]fakeSubscriber),
	}
}

func (f *fakeCollection) stamp() string {
	f.seq++
	return time.Date(2026, 1, 1, 0, 0, f.seq, 0, time.UTC).Format(docstore.TimeLayout)
}

func (f *fakeCollection) Create(_ context.Context, data map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cap == capNone {
		return "", errors.New("store unavailable")
	}
	id := fmt.Sprintf("doc-%d", len(f.order)+1)
	stored := make(map[string]any, len(data)+1)
	for k, v := range data {
		stored[k] = v
	}
	stored["createdAt"] = f.stamp()
	f.docs[id] = stored
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeCollection) Get(_ context.Context, id string) (docstore.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.docs[id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return docstore.Document{ID: id, Data: data}, nil
}

func (f *fakeCollection) Set(_ context.Context, id string, data map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		f.order = append(f.order, id)
	}
	f.docs[id] = data
	return nil
}

func (f *fakeCollection) Update(_ context.Context, id string, patch map[string]any) error {
	f.mu.Lock()
	data, ok := f.docs[id]
	if !ok {
		f.mu.Unlock()
		return docstore.ErrNotFound
	}
	for k, v := range patch {
		data[k] = v
	}
	f.mu.Unlock()
	f.fire()
	return nil
}

func (f *fakeCollection) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCollection) Query(_ context.Context, q docstore.Query) ([]docstore.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryLocked(q)
}

func (f *fakeCollection) queryLocked(q docstore.Query) ([]docstore.Document, error) {
	if f.cap == capNone {
		return nil, errors.New("store unavailable")
	}
	filters := q.Filters()
	orderBy, desc := q.Order()
	if f.cap >= capNoFilters && len(filters) > 0 {
		return nil, errors.New("filters not supported")
	}
	if f.cap >= capNoComposite && orderBy != "" {
		for _, filter := range filters {
			if filter.Field != orderBy {
				return nil, fmt.Errorf("%w: %s with order by %s", docstore.ErrIndexRequired, filter.Field, orderBy)
			}
		}
	}

	var docs []docstore.Document
	for _, id := range f.order {
		data := f.docs[id]
		match := true
		for _, filter := range filters {
			if filter.Op != docstore.OpEqual {
				return nil, fmt.Errorf("unsupported operator %q", filter.Op)
			}
			if !valuesEqual(data[filter.Field], filter.Value) {
				match = false
				break
			}
		}
		if match {
			docs = append(docs, docstore.Document{ID: id, Data: data})
		}
	}
	if orderBy != "" {
		if desc {
			docstore.SortByFieldDesc(docs, orderBy)
		} else {
			// like the store's jsonb ordering: numbers numerically,
			// strings lexicographically
			sort.SliceStable(docs, func(i, j int) bool {
				return lessByField(docs[i].Data[orderBy], docs[j].Data[orderBy])
			})
		}
	}
	return docs, nil
}

// valuesEqual compares a stored value with a filter argument across the
// numeric widening JSON round-trips introduce.
func valuesEqual(stored, want any) bool {
	if stored == nil {
		if b, ok := want.(bool); ok {
			return !b
		}
		return false
	}
	if sf, ok := toFloat(stored); ok {
		if wf, wok := toFloat(want); wok {
			return sf == wf
		}
	}
	return fmt.Sprint(stored) == fmt.Sprint(want)
}

func lessByField(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af < bf
		}
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func (f *fakeCollection) Subscribe(q docstore.Query, onChange func([]docstore.Document), onError func(error)) (func(), error) {
	f.mu.Lock()
	docs, err := f.queryLocked(q)
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fakeSubscriber{query: q, onChange: onChange, onError: onError}
	f.mu.Unlock()

	onChange(docs)
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}, nil
}

// fire re-evaluates every subscriber, delivering results or the evaluation
// error, the way the real store does after a change event.
func (f *fakeCollection) fire() {
	f.mu.Lock()
	pending := make(map[int]fakeSubscriber, len(f.subs))
	for id, sub := range f.subs {
		pending[id] = sub
	}
	f.mu.Unlock()

	for id, sub := range pending {
		f.mu.Lock()
		docs, err := f.queryLocked(sub.query)
		if err != nil {
			delete(f.subs, id)
		}
		f.mu.Unlock()
		if err != nil {
			sub.onError(err)
			continue
		}
		sub.onChange(docs)
	}
}

// degrade lowers the collection's capability, simulating a store losing a
// feature while subscriptions are live.
func (f *fakeCollection) degrade(level capability) {
	f.mu.Lock()
	f.cap = level
	f.mu.Unlock()
}

// fakeStore hands out named fake collections, covering the subcollection
// paths the film service derives.
type fakeStore struct {
	mu          sync.Mutex
	cap         capability
	collections map[string]*fakeCollection
}

func newFakeStore(level capability) *fakeStore {
	return &fakeStore{cap: level, collections: make(map[string]*fakeCollection)}
}

func (s *fakeStore) Collection(name string) DocCollection {
	return s.collection(name)
}

func (s *fakeStore) collection(name string) *fakeCollection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[name] == nil {
		s.collections[name] = newFakeCollection(s.cap)
	}
	return s.collections[name]
}
