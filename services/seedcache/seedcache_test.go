package seedcache

import (
	"context"
	"testing"

	"triagesim/rng"
)

func TestGetOrGenerateFallsBackWithoutRedis(t *testing.T) {
	cache := &SeedCache{}
	got, err := cache.GetOrGenerate(context.Background(), 42, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := rng.GenerateSeedVector(42, 20)
	if len(got) != len(want) {
		t.Fatalf("expected %d seeds, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("seed %d mismatch: want %d got %d", i, want[i], got[i])
		}
	}
}

func TestSeedKeyIsStableForSameInputs(t *testing.T) {
	if seedKey(7, 20) != seedKey(7, 20) {
		t.Fatalf("expected seedKey to be deterministic")
	}
	if seedKey(7, 20) == seedKey(8, 20) {
		t.Fatalf("expected different master seeds to produce different keys")
	}
}
