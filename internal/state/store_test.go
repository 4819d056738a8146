package state

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/inventory/inventorytest"
)

func seedProducts() []inventory.Product {
	return []inventory.Product{
		{ID: inventory.NumericID(1), Name: "Bolt", Quantity: 12, Price: decimal.RequireFromString("0.25")},
		{ID: inventory.NumericID(2), Name: "Nut", Quantity: 3, Price: decimal.RequireFromString("0.10")},
	}
}

func TestStore_RefreshReplacesListAndStatsTogether(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	var s Store

	before := time.Now()
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snap := s.Snapshot()
	if !snap.HasData || snap.Version != 1 {
		t.Fatalf("snapshot HasData=%v Version=%d, want true/1", snap.HasData, snap.Version)
	}
	if len(snap.Products) != 2 || snap.Stats.TotalProducts != 2 || snap.Stats.LowStockCount != 1 {
		t.Fatalf("snapshot = %#v, want 2 products with matching stats", snap)
	}
	if snap.Loading {
		t.Fatalf("Loading = true after Refresh returned")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if fake.Calls(inventorytest.OpList) != 1 || fake.Calls(inventorytest.OpStats) != 1 {
		t.Fatalf("refresh should issue exactly one list and one stats request")
	}

	// Returned snapshot should be independent of the stored one.
	snap.Products[0].Name = "mutated"
	if s.Snapshot().Products[0].Name != "Bolt" {
		t.Fatalf("Snapshot should clone products")
	}
}

func TestStore_RefreshFailsAsAUnit(t *testing.T) {
	for _, op := range []string{inventorytest.OpList, inventorytest.OpStats} {
		t.Run(op, func(t *testing.T) {
			fake := inventorytest.New(seedProducts()...)
			var s Store
			if err := s.Refresh(context.Background(), fake); err != nil {
				t.Fatalf("initial Refresh returned error: %v", err)
			}
			prev := s.Snapshot()

			// A product added server-side must not appear if either request fails.
			if _, err := fake.CreateProduct(context.Background(), inventory.ProductInput{Name: "Washer", Quantity: 1, Price: decimal.NewFromInt(1)}); err != nil {
				t.Fatalf("seed create: %v", err)
			}
			fake.FailOn(op, inventorytest.ErrInjected)

			err := s.Refresh(context.Background(), fake)
			if !errors.Is(err, ErrFetchFailed) || !errors.Is(err, inventorytest.ErrInjected) {
				t.Fatalf("Refresh error = %v, want ErrFetchFailed wrapping injected error", err)
			}
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Refresh error = %T, want *FetchError", err)
			}

			snap := s.Snapshot()
			if !reflect.DeepEqual(snap.Products, prev.Products) || !reflect.DeepEqual(snap.Stats, prev.Stats) {
				t.Fatalf("store changed on failed refresh")
			}
			if snap.Version != prev.Version {
				t.Fatalf("Version = %d, want %d", snap.Version, prev.Version)
			}
			if snap.Loading {
				t.Fatalf("Loading = true after failed Refresh")
			}
			if snap.LastError == nil || snap.ConsecutiveFailures != 1 {
				t.Fatalf("failure not recorded: %#v", snap)
			}
		})
	}
}

type blockingService struct {
	inventory.Service
	entered chan struct{}
	release chan struct{}
}

func (b *blockingService) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	close(b.entered)
	<-b.release
	return b.Service.ListProducts(ctx)
}

func TestStore_LoadingDuringRefresh(t *testing.T) {
	svc := &blockingService{
		Service: inventorytest.New(seedProducts()...),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	var s Store

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Refresh(context.Background(), svc)
	}()

	<-svc.entered
	if !s.Loading() {
		t.Fatalf("Loading = false while refresh in flight")
	}
	close(svc.release)
	wg.Wait()
	if s.Loading() {
		t.Fatalf("Loading = true after refresh completed")
	}
}

// gatedList holds the first ListProducts call open after it has read the
// list, so its result is older than anything fetched while it waits.
type gatedList struct {
	inventory.Service
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedList) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	first := false
	g.once.Do(func() { first = true })
	products, err := g.Service.ListProducts(ctx)
	if first {
		close(g.entered)
		<-g.release
	}
	return products, err
}

func TestStore_OverlappingRefreshNeverGoesBackInTime(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	svc := &gatedList{Service: fake, entered: make(chan struct{}), release: make(chan struct{})}
	var s Store

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background(), svc) }()
	<-svc.entered

	in := inventory.ProductInput{Name: "Widget", Quantity: 5, Price: decimal.RequireFromString("2.5")}
	if err := s.Create(context.Background(), svc, in); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := len(s.Snapshot().Products); got != 3 {
		t.Fatalf("after create: %d products, want 3", got)
	}
	if !s.Loading() || !s.Snapshot().Loading {
		t.Fatalf("Loading cleared while the first refresh is still running")
	}

	close(svc.release)
	if err := <-done; err != nil {
		t.Fatalf("gated Refresh returned error: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Products) != 3 || snap.Stats.TotalProducts != 3 {
		t.Fatalf("stale refresh overwrote newer data: %d products, stats total %d", len(snap.Products), snap.Stats.TotalProducts)
	}
	if snap.Version != 1 {
		t.Fatalf("Version = %d, want 1 (stale result must not count)", snap.Version)
	}
	if s.Loading() || snap.Loading {
		t.Fatalf("Loading = true after every refresh returned")
	}
}

func TestStore_StaleFailureDoesNotCount(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	var s Store

	gen := s.begin()
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	s.recordFailure(gen, &FetchError{Err: inventorytest.ErrInjected})
	s.end()

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("failure of an older refresh was recorded: %+v", snap)
	}
}

func TestStore_CreateThenRefresh(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	var s Store
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	before := s.Snapshot().Stats.TotalProducts

	in := inventory.ProductInput{Name: "Widget", Quantity: 5, Price: decimal.RequireFromString("2.5")}
	if err := s.Create(context.Background(), fake, in); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	snap := s.Snapshot()
	var found *inventory.Product
	for i := range snap.Products {
		if snap.Products[i].Name == "Widget" {
			found = &snap.Products[i]
		}
	}
	if found == nil {
		t.Fatalf("created product missing from refreshed list: %#v", snap.Products)
	}
	if found.ID.IsZero() || found.Quantity != 5 || !found.Price.Equal(in.Price) {
		t.Fatalf("created product = %#v, want server id and submitted fields", found)
	}
	if snap.Stats.TotalProducts != before+1 {
		t.Fatalf("TotalProducts = %d, want %d", snap.Stats.TotalProducts, before+1)
	}
}

func TestStore_FailedUpdateLeavesStoreUntouched(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	var s Store
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	prev := s.Snapshot()
	listCalls := fake.Calls(inventorytest.OpList)

	fake.FailOn(inventorytest.OpUpdate, inventorytest.ErrInjected)
	err := s.Update(context.Background(), fake, inventory.NumericID(1),
		inventory.ProductInput{Name: "Bolt", Quantity: 0, Price: decimal.NewFromInt(9)})

	var mutErr *MutationError
	if !errors.As(err, &mutErr) || mutErr.Op != OpUpdate {
		t.Fatalf("Update error = %v, want *MutationError{Op: update}", err)
	}
	if !errors.Is(err, ErrMutationFailed) {
		t.Fatalf("Update error should match ErrMutationFailed")
	}
	if !reflect.DeepEqual(s.Snapshot().Products, prev.Products) {
		t.Fatalf("store changed after failed update")
	}
	if fake.Calls(inventorytest.OpList) != listCalls {
		t.Fatalf("failed mutation must not trigger a refresh")
	}
}

func TestStore_MutationLandsButRefreshFails(t *testing.T) {
	fake := inventorytest.New(seedProducts()...)
	var s Store
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	fake.FailOn(inventorytest.OpStats, inventorytest.ErrInjected)
	err := s.Remove(context.Background(), fake, inventory.NumericID(2))
	if !IsFetchError(err) {
		t.Fatalf("Remove error = %v, want *FetchError", err)
	}
	if len(fake.Products()) != 1 {
		t.Fatalf("delete should have landed server-side")
	}
	if len(s.Snapshot().Products) != 2 {
		t.Fatalf("store should keep previous list when the refresh fails")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	fake := inventorytest.New()
	fake.FailOn(inventorytest.OpList, inventorytest.ErrInjected)
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}
	_ = s.Refresh(context.Background(), fake)
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}
	_ = s.Refresh(context.Background(), fake)
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	fake.FailOn(inventorytest.OpList, nil)
	if err := s.Refresh(context.Background(), fake); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("success should reset failure state: %#v", snap)
	}
}
