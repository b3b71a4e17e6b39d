// Package inventory implements the warehouse domain on top of the generic
// store: item entities with validated constructors, a service sequencing
// repository, grouping index and snapshot persistence, and a strict batch
// importer for seed files.
package inventory

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tmarbury/stockroom/internal/clock/system"
	"github.com/tmarbury/stockroom/internal/metrics"
	"github.com/tmarbury/stockroom/internal/persist"
	"github.com/tmarbury/stockroom/internal/store"
)

// Clock abstracts time.Now so receipt stamping is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Service owns one repository of items, the category index derived from it,
// and the snapshot adapter for durable state. Like the repository itself it
// is not safe for concurrent use; it expects a single exclusive owner.
type Service struct {
	repo       *store.Repository[int, Item]
	byCategory *store.GroupIndex[string, Item]
	snapshots  *persist.Adapter[Item]
	clock      Clock
	logger     *zap.Logger
}

// NewService constructs a Service around an empty repository. A nil clock
// falls back to the system clock, a nil logger to a no-op logger.
func NewService(snapshots *persist.Adapter[Item], clk Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = system.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       store.NewRepository[int, Item](),
		byCategory: store.NewGroupIndex[string, Item](),
		snapshots:  snapshots,
		clock:      clk,
		logger:     logger,
	}
}

// Add stores a validated item. Duplicate ids fail with store.ErrDuplicateID.
func (s *Service) Add(item Item) error {
	if err := s.repo.Add(item); err != nil {
		return err
	}
	metrics.RecordItemAdded()
	s.logger.Info("item added",
		zap.Int("id", item.ID),
		zap.String("name", item.Name),
		zap.String("category", item.Category),
		zap.Int("quantity", item.Quantity),
	)
	return nil
}

// Receive stamps the item with today's date before adding it. Used when an
// item enters the warehouse now rather than from a seed file.
func (s *Service) Receive(item Item) error {
	item.ReceivedAt = DateOf(s.clock.Now())
	return s.Add(item)
}

// Item returns the item with the given id, or store.ErrNotFound.
func (s *Service) Item(id int) (Item, error) {
	return s.repo.Get(id)
}

// Items returns a snapshot of every item in insertion order.
func (s *Service) Items() []Item {
	return s.repo.All()
}

// Len reports how many items are stored.
func (s *Service) Len() int {
	return s.repo.Len()
}

// Remove deletes the item with the given id, or fails with store.ErrNotFound.
func (s *Service) Remove(id int) error {
	if err := s.repo.Remove(id); err != nil {
		return err
	}
	metrics.RecordItemRemoved()
	s.logger.Info("item removed", zap.Int("id", id))
	return nil
}

// UpdateQuantity sets the on-hand quantity for an item. A negative quantity
// fails with store.ErrInvalidValue before the store is touched; an unknown
// id fails with store.ErrNotFound.
func (s *Service) UpdateQuantity(id, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity %d is negative: %w", quantity, store.ErrInvalidValue)
	}
	err := s.repo.Update(id, func(item Item) (Item, error) {
		item.Quantity = quantity
		return item, nil
	})
	if err != nil {
		return err
	}
	metrics.RecordQuantityUpdate()
	s.logger.Info("quantity updated", zap.Int("id", id), zap.Int("quantity", quantity))
	return nil
}

// FirstBelowThreshold returns the first item, in insertion order, whose
// quantity is strictly below threshold. The second result is false when
// stock is healthy everywhere.
func (s *Service) FirstBelowThreshold(threshold int) (Item, bool) {
	return s.repo.First(func(item Item) bool {
		return item.Quantity < threshold
	})
}

// Categories rebuilds the category index and returns the category keys in
// first-encounter order.
func (s *Service) Categories() []string {
	s.rebuildIndex()
	return s.byCategory.Groups()
}

// ByCategory rebuilds the category index and returns the items in the given
// category in insertion order. An unknown category yields an empty slice.
func (s *Service) ByCategory(category string) []Item {
	s.rebuildIndex()
	return s.byCategory.Lookup(category)
}

// ByCategoryRecentFirst is ByCategory ordered by receipt date, newest first.
// The ordering is applied to the returned copy only.
func (s *Service) ByCategoryRecentFirst(category string) []Item {
	s.rebuildIndex()
	return s.byCategory.LookupSorted(category, func(a, b Item) bool {
		return a.ReceivedAt.After(b.ReceivedAt)
	})
}

// Save persists the current repository snapshot.
func (s *Service) Save() error {
	if err := s.snapshots.Save(s.repo.All()); err != nil {
		metrics.RecordSnapshotError()
		return err
	}
	metrics.RecordSnapshotSave()
	return nil
}

// Clear discards every stored item, leaving durable state untouched.
func (s *Service) Clear() {
	s.repo.Clear()
	s.logger.Info("repository cleared")
}

// Restore replaces in-memory state with the persisted snapshot. Entities are
// re-added one by one into a fresh repository, so a corrupted snapshot with
// duplicate ids fails with store.ErrDuplicateID and leaves the current state
// in place. A missing snapshot restores to empty.
func (s *Service) Restore() error {
	items, err := s.snapshots.Load()
	if err != nil {
		metrics.RecordSnapshotError()
		return err
	}
	fresh := store.NewRepository[int, Item]()
	for _, item := range items {
		if err := fresh.Add(item); err != nil {
			metrics.RecordSnapshotError()
			return fmt.Errorf("restore from %s: %w", s.snapshots.Path(), err)
		}
	}
	s.repo = fresh
	metrics.RecordSnapshotLoad()
	s.logger.Info("repository restored",
		zap.String("path", s.snapshots.Path()),
		zap.Int("entities", fresh.Len()),
	)
	return nil
}

func (s *Service) rebuildIndex() {
	s.byCategory.Rebuild(s.repo.All(), func(item Item) string {
		return item.Category
	})
}
