package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/tally/internal/inventory"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Products            []inventory.Product
	Stats               inventory.Stats
	HasData             bool
	Version             uint64 // bumped on every applied refresh
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple
// refreshes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the client-side copy of the product list and stats. Both are
// only ever replaced together by Refresh. The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	log      *zap.Logger

	started  uint64 // generation handed to the most recent Refresh
	applied  uint64 // newest generation whose outcome is in snapshot
	inflight int
}

// NewStore returns a store that logs refresh and mutation failures to log.
func NewStore(log *zap.Logger) *Store {
	return &Store{log: log}
}

func (s *Store) logger() *zap.Logger {
	if s.log == nil {
		return zap.NewNop()
	}
	return s.log
}

// Refresh fetches the product list and stats concurrently and replaces both
// when, and only when, both requests succeed. Loading is true while any
// Refresh is running. Refreshes may overlap; each one is stamped when it
// starts and an outcome older than one already applied is discarded, so the
// snapshot never goes back in time.
func (s *Store) Refresh(ctx context.Context, svc inventory.Service) error {
	gen := s.begin()
	defer s.end()

	var (
		products []inventory.Product
		stats    inventory.Stats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = svc.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		stats, err = svc.FetchStats(gctx)
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		fetchErr := &FetchError{Err: err}
		s.recordFailure(gen, fetchErr)
		s.logger().Warn("refresh failed", zap.Uint64("generation", gen), zap.Error(err))
		return fetchErr
	}

	if !s.replace(gen, products, stats) {
		s.logger().Debug("discarded stale refresh", zap.Uint64("generation", gen))
	}
	return nil
}

// Create posts a new product and refreshes on success.
func (s *Store) Create(ctx context.Context, svc inventory.Service, in inventory.ProductInput) error {
	return s.mutate(ctx, svc, OpCreate, func() error {
		_, err := svc.CreateProduct(ctx, in)
		return err
	})
}

// Update replaces the product with id and refreshes on success.
func (s *Store) Update(ctx context.Context, svc inventory.Service, id inventory.ID, in inventory.ProductInput) error {
	return s.mutate(ctx, svc, OpUpdate, func() error {
		_, err := svc.UpdateProduct(ctx, id, in)
		return err
	})
}

// Remove deletes the product with id and refreshes on success.
func (s *Store) Remove(ctx context.Context, svc inventory.Service, id inventory.ID) error {
	return s.mutate(ctx, svc, OpDelete, func() error {
		return svc.DeleteProduct(ctx, id)
	})
}

// mutate never patches the local copy; the store only changes through a full
// refresh. A *MutationError means nothing happened server-side as far as the
// client knows. A *FetchError means the mutation landed but the follow-up
// refresh failed.
func (s *Store) mutate(ctx context.Context, svc inventory.Service, op Op, call func() error) error {
	if err := call(); err != nil {
		s.logger().Warn("mutation failed", zap.String("op", string(op)), zap.Error(err))
		return &MutationError{Op: op, Err: err}
	}
	return s.Refresh(ctx, svc)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.snapshot.Products)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Loading reports whether any refresh is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	s.inflight++
	s.snapshot.Loading = true
	return s.started
}

func (s *Store) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	s.snapshot.Loading = s.inflight > 0
}

// replace installs the result of refresh gen unless a newer refresh has
// already been applied.
func (s *Store) replace(gen uint64, products []inventory.Product, stats inventory.Stats) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.applied {
		return false
	}
	s.applied = gen
	s.snapshot.Products = cloneProducts(products)
	s.snapshot.Stats = stats
	s.snapshot.HasData = true
	s.snapshot.Version++
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// recordFailure counts a failed refresh unless a newer one already succeeded.
// A failure does not block an older refresh that is still running.
func (s *Store) recordFailure(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen < s.applied {
		return
	}
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

func cloneProducts(items []inventory.Product) []inventory.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]inventory.Product, len(items))
	copy(dup, items)
	return dup
}

// IsFetchError reports whether err came from a failed refresh.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
