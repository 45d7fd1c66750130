package docstore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound      = errors.New("docstore: document not found")
	ErrIndexRequired = errors.New("docstore: query requires a composite index")
)

// TimeLayout is fixed-width so stored timestamps sort lexicographically.
const TimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Document struct {
	ID   string
	Data map[string]any
}

// DocumentRow is the single jsonb table backing every collection.
type DocumentRow struct {
	Collection string            `gorm:"primaryKey;size:255"`
	DocID      string            `gorm:"primaryKey;column:doc_id;size:64"`
	Data       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (DocumentRow) TableName() string {
	return "documents"
}

// CompositeIndex registers that a collection supports filtering on one field
// while ordering on another. Queries combining filter and order without a
// matching entry fail with ErrIndexRequired.
type CompositeIndex struct {
	Collection  string `gorm:"primaryKey;size:255"`
	FilterField string `gorm:"primaryKey;size:255"`
	OrderField  string `gorm:"primaryKey;size:255"`
}

func (CompositeIndex) TableName() string {
	return "document_indexes"
}

type Store struct {
	db  *gorm.DB
	rdb *redis.Client

	idxMu   sync.RWMutex
	indexes map[string]bool // collection|filterField|orderField

	subMu   sync.Mutex
	subs    map[string]map[int]chan struct{}
	nextSub int
}

func New(db *gorm.DB, rdb *redis.Client) *Store {
	s := &Store{
		db:      db,
		rdb:     rdb,
		indexes: make(map[string]bool),
		subs:    make(map[string]map[int]chan struct{}),
	}
	s.loadIndexes()
	if rdb != nil {
		go s.listenRemote()
	}
	return s
}

func (s *Store) loadIndexes() {
	var rows []CompositeIndex
	if err := s.db.Find(&rows).Error; err != nil {
		log.Printf("docstore: load indexes: %v", err)
		return
	}
	s.idxMu.Lock()
	for _, r := range rows {
		s.indexes[indexKey(r.Collection, r.FilterField, r.OrderField)] = true
	}
	s.idxMu.Unlock()
}

func (s *Store) RegisterIndex(collection, filterField, orderField string) error {
	idx := CompositeIndex{Collection: collection, FilterField: filterField, OrderField: orderField}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&idx).Error; err != nil {
		return fmt.Errorf("docstore: register index: %w", err)
	}
	s.idxMu.Lock()
	s.indexes[indexKey(collection, filterField, orderField)] = true
	s.idxMu.Unlock()
	return nil
}

func (s *Store) hasIndex(collection, filterField, orderField string) bool {
	s.idxMu.RLock()
	defer s.idxMu.RUnlock()
	return s.indexes[indexKey(collection, filterField, orderField)]
}

func indexKey(collection, filterField, orderField string) string {
	return collection + "|" + filterField + "|" + orderField
}

func (s *Store) Collection(name string) *Collection {
	return &Collection{store: s, name: name}
}

// ServerTime reads the database clock so createdAt never depends on the
// application host's clock.
func (s *Store) ServerTime(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := s.db.WithContext(ctx).Raw("SELECT NOW()").Scan(&now).Error; err != nil {
		return time.Time{}, fmt.Errorf("docstore: server time: %w", err)
	}
	return now.UTC(), nil
}

// notify wakes local watchers and fans the event out over Redis so other
// instances re-evaluate their subscriptions too.
func (s *Store) notify(collection string) {
	s.subMu.Lock()
	for _, ch := range s.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	s.subMu.Unlock()

	if s.rdb != nil {
		if err := s.rdb.Publish(context.Background(), "doc:"+collection, "changed").Err(); err != nil {
			log.Printf("docstore: publish %s: %v", collection, err)
		}
	}
}

func (s *Store) listenRemote() {
	pubsub := s.rdb.PSubscribe(context.Background(), "doc:*")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		collection := msg.Channel[len("doc:"):]
		s.subMu.Lock()
		for _, ch := range s.subs[collection] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
		s.subMu.Unlock()
	}
}

func (s *Store) watch(collection string) (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int]chan struct{})
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[collection][id] = ch
	cancel := func() {
		s.subMu.Lock()
		if s.subs[collection] != nil {
			delete(s.subs[collection], id)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

type Collection struct {
	store *Store
	name  string
}

func (c *Collection) Name() string {
	return c.name
}

// Create stores data under a fresh ID and stamps createdAt from the server
// clock. The caller's map is not retained.
func (c *Collection) Create(ctx context.Context, data map[string]any) (string, error) {
	now, err := c.store.ServerTime(ctx)
	if err != nil {
		return "", err
	}
	payload := make(map[string]any, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["createdAt"] = now.Format(TimeLayout)

	row := DocumentRow{
		Collection: c.name,
		DocID:      uuid.NewString(),
		Data:       datatypes.JSONMap(payload),
	}
	if err := c.store.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("docstore: create in %s: %w", c.name, err)
	}
	c.store.notify(c.name)
	return row.DocID, nil
}

func (c *Collection) Get(ctx context.Context, id string) (Document, error) {
	var row DocumentRow
	err := c.store.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", c.name, id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("docstore: get %s/%s: %w", c.name, id, err)
	}
	return Document{ID: row.DocID, Data: map[string]any(row.Data)}, nil
}

// Set replaces the whole document.
func (c *Collection) Set(ctx context.Context, id string, data map[string]any) error {
	row := DocumentRow{
		Collection: c.name,
		DocID:      id,
		Data:       datatypes.JSONMap(data),
	}
	err := c.store.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("docstore: set %s/%s: %w", c.name, id, err)
	}
	c.store.notify(c.name)
	return nil
}

// Update merges patch into the existing document. Fails with ErrNotFound when
// the document does not exist.
func (c *Collection) Update(ctx context.Context, id string, patch map[string]any) error {
	doc, err := c.Get(ctx, id)
	if err != nil {
		return err
	}
	for k, v := range patch {
		doc.Data[k] = v
	}
	result := c.store.db.WithContext(ctx).
		Model(&DocumentRow{}).
		Where("collection = ? AND doc_id = ?", c.name, id).
		Update("data", datatypes.JSONMap(doc.Data))
	if result.Error != nil {
		return fmt.Errorf("docstore: update %s/%s: %w", c.name, id, result.Error)
	}
	c.store.notify(c.name)
	return nil
}

// Delete removes the row physically. Entity-level deletion is a soft flag in
// the services; this exists for subcollection rewrites.
func (c *Collection) Delete(ctx context.Context, id string) error {
	err := c.store.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", c.name, id).
		Delete(&DocumentRow{}).Error
	if err != nil {
		return fmt.Errorf("docstore: delete %s/%s: %w", c.name, id, err)
	}
	c.store.notify(c.name)
	return nil
}

func (c *Collection) Query(ctx context.Context, q Query) ([]Document, error) {
	if field, ok := q.compositeWithout(func(filterField, orderField string) bool {
		return c.store.hasIndex(c.name, filterField, orderField)
	}); ok {
		return nil, fmt.Errorf("%w: %s with order by %s in %s", ErrIndexRequired, field, q.orderBy, c.name)
	}

	tx := c.store.db.WithContext(ctx).
		Model(&DocumentRow{}).
		Where("collection = ?", c.name)
	for _, f := range q.filters {
		expr, arg, err := filterExpr(f)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(expr, arg)
	}
	if q.orderBy != "" {
		dir := "ASC"
		if q.desc {
			dir = "DESC"
		}
		// Order on the jsonb value, not its text form. jsonb comparison
		// sorts numbers numerically; ->> would collate "10" before "2".
		tx = tx.Order(fmt.Sprintf("data -> '%s' %s", q.orderBy, dir))
	}
	if q.limit > 0 {
		tx = tx.Limit(q.limit)
	}

	var rows []DocumentRow
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("docstore: query %s: %w", c.name, err)
	}
	docs := make([]Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, Document{ID: row.DocID, Data: map[string]any(row.Data)})
	}
	return docs, nil
}

func filterExpr(f Filter) (string, any, error) {
	op, ok := sqlOps[f.Op]
	if !ok {
		return "", nil, fmt.Errorf("docstore: unsupported operator %q", f.Op)
	}
	switch v := f.Value.(type) {
	case bool:
		return fmt.Sprintf("COALESCE((data ->> '%s')::boolean, false) %s ?", f.Field, op), v, nil
	case int, int64, float64:
		return fmt.Sprintf("(data ->> '%s')::numeric %s ?", f.Field, op), v, nil
	default:
		return fmt.Sprintf("data ->> '%s' %s ?", f.Field, op), v, nil
	}
}

var sqlOps = map[Op]string{
	OpEqual:        "=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpLess:         "<",
	OpLessEqual:    "<=",
}

// Subscribe evaluates q immediately and then re-evaluates it on every change
// to the collection, local or pushed over Redis. Setup errors are returned;
// later evaluation errors go to onError and end the subscription. The caller
// must invoke the returned function or the watcher leaks.
func (c *Collection) Subscribe(q Query, onChange func([]Document), onError func(error)) (func(), error) {
	docs, err := c.Query(context.Background(), q)
	if err != nil {
		return nil, err
	}
	onChange(docs)

	events, cancelWatch := c.store.watch(c.name)
	done := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancelWatch()
			close(done)
		})
	}

	go func() {
		for {
			select {
			case <-done:
				return
			case <-events:
				docs, err := c.Query(context.Background(), q)
				if err != nil {
					unsubscribe()
					onError(err)
					return
				}
				select {
				case <-done:
					return
				default:
				}
				onChange(docs)
			}
		}
	}()

	return unsubscribe, nil
}

// SortByFieldDesc orders docs by a lexicographically sortable string field,
// newest first. Used for client-side compensation when the store could not
// order server-side.
func SortByFieldDesc(docs []Document, field string) {
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := docs[i].Data[field].(string)
		b, _ := docs[j].Data[field].(string)
		return a > b
	})
}
