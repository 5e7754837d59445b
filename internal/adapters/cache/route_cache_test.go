package cache

import (
	"context"
	"testing"
	"time"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func sampleEntry() ports.RouteCacheEntry {
	return ports.RouteCacheEntry{
		Venues: []domain.Venue{
			{ID: 2, Name: "Ekdalia Evergreen", Position: domain.LatLng{Lat: 22.5180, Lng: 88.3642}},
			{ID: 1, Name: "Bagbazar Sarbojanin", Position: domain.LatLng{Lat: 22.6043, Lng: 88.3651}},
		},
		Path: []domain.LatLng{
			{Lat: 22.5726, Lng: 88.3639},
			{Lat: 22.5180, Lng: 88.3642},
			{Lat: 22.6043, Lng: 88.3651},
			{Lat: 22.5726, Lng: 88.3639},
		},
	}
}

func TestMemoryRouteCacheMissThenHit(t *testing.T) {
	c := NewMemoryRouteCache()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "greedy_tunes00_1,2"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := sampleEntry()
	if err := c.Put(ctx, "greedy_tunes00_1,2", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "greedy_tunes00_1,2")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got.Venues) != 2 || got.Venues[0].ID != 2 {
		t.Fatalf("entry round-trip mangled venue order: %+v", got.Venues)
	}
	if len(got.Path) != 4 {
		t.Fatalf("expected 4 path points, got %d", len(got.Path))
	}
}

func TestMemoryRouteCacheOverwrite(t *testing.T) {
	c := NewMemoryRouteCache()
	ctx := context.Background()

	first := sampleEntry()
	if err := c.Put(ctx, "k", first); err != nil {
		t.Fatalf("put: %v", err)
	}

	second := sampleEntry()
	second.Venues = second.Venues[:1]
	if err := c.Put(ctx, "k", second); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, _ := c.Get(ctx, "k")
	if !ok || len(got.Venues) != 1 {
		t.Fatalf("expected overwritten entry with 1 venue, got ok=%v venues=%d", ok, len(got.Venues))
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisRouteCache(client, 0)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "optimized_tunes00_1,2"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	want := sampleEntry()
	if err := c.Put(ctx, "optimized_tunes00_1,2", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "optimized_tunes00_1,2")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got.Venues[1].Name != "Bagbazar Sarbojanin" {
		t.Fatalf("entry round-trip lost venue data: %+v", got.Venues)
	}
}

func TestRedisRouteCacheEntriesExpire(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	c := NewRedisRouteCache(client, defaultRouteTTL)
	ctx := context.Background()

	if err := c.Put(ctx, "k", sampleEntry()); err != nil {
		t.Fatalf("put: %v", err)
	}

	srv.FastForward(defaultRouteTTL + time.Second)

	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected entry to expire, got ok=%v err=%v", ok, err)
	}
}
