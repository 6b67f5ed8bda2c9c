package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roscon_orders/internal/config"
	"roscon_orders/internal/roscon"
	"roscon_orders/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KV is the persistence collaborator: one blob under one key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store owns the order collection. Every mutation replaces the in-memory
// slice entry and then writes the whole collection back. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type Store struct {
	kv     KV
	key    string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	orders []Order
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func NewStore(kv KV, cfg config.Config, logger *zap.Logger) *Store {
	return New(kv, cfg.StorageKey, logger)
}

func New(kv KV, key string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:     kv,
		key:    key,
		logger: logger.Named("orders"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored collection once. A missing key, a failed read or an
// unparseable blob all fall back to the sample orders.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("no stored orders, seeding sample data", zap.String("key", s.key))
		return s.seed(ctx)
	case err != nil:
		s.logger.Warn("reading stored orders failed, seeding sample data", zap.String("key", s.key), zap.Error(err))
		return s.seed(ctx)
	}

	list, err := Decode(data)
	if err != nil {
		s.logger.Warn("stored orders are malformed, seeding sample data", zap.String("key", s.key), zap.Error(err))
		return s.seed(ctx)
	}

	s.orders = list
	s.logger.Info("orders loaded", zap.Int("count", len(list)))
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	return s.commit(ctx, SampleOrders(s.now().UTC()))
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []Order {
	out := make([]Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.clone()
	}
	return out
}

func (s *Store) Get(id string) (Order, bool) {
	if i := s.index(id); i >= 0 {
		return s.orders[i].clone(), true
	}
	return Order{}, false
}

// Create validates the input, assigns a fresh id and creation time, and
// appends the order.
func (s *Store) Create(ctx context.Context, in Input) (Order, error) {
	valid, err := Validate(in)
	if err != nil {
		return Order{}, err
	}

	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}

	o := valid.order(id, s.now().UTC())
	next := append(s.List(), o)
	if err := s.commit(ctx, next); err != nil {
		return Order{}, err
	}
	s.logger.Info("order created",
		zap.String("id", o.ID),
		zap.String("customer", o.CustomerName),
		zap.String("delivery_date", o.DeliveryDate),
		zap.String("price", o.Price.StringFixed(2)),
	)
	return o.clone(), nil
}

// Update replaces the order with the same id. It reports false when there
// is no such order.
func (s *Store) Update(ctx context.Context, o Order) (bool, error) {
	i := s.index(o.ID)
	if i < 0 {
		return false, nil
	}
	next := s.List()
	next[i] = o.clone().withDerivedPrice()
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Info("order updated", zap.String("id", o.ID))
	return true, nil
}

// Remove deletes the order unconditionally; confirmation belongs to the caller.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	current := s.List()
	next := append(current[:i:i], current[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Info("order removed", zap.String("id", id))
	return true, nil
}

// SetStatus changes only the status of the order.
func (s *Store) SetStatus(ctx context.Context, id string, status roscon.Status) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	next := s.List()
	previous := next[i].Status
	next[i].Status = status
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.logger.Info("order status changed",
		zap.String("id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	return true, nil
}

func (s *Store) index(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// commit writes next as the whole collection and only then makes it the
// in-memory state. On error the store is left as it was.
func (s *Store) commit(ctx context.Context, next []Order) error {
	data, err := Encode(next)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	s.orders = next
	s.logger.Debug("orders saved", zap.Int("count", len(next)), zap.Int("bytes", len(data)))
	return nil
}
