package services_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/bankdash/bank-system/internal/adapter/repository/memory"
	"github.com/bankdash/bank-system/internal/usecase/services"
	"github.com/shopspring/decimal"
)

const accountNumberMin int64 = 100_000_000_000

// sequenceRand replays a fixed list of draws, then falls back to a
// counter so the generator can always find a free number.
func sequenceRand(draws []int64) func(int64) int64 {
	i := 0
	fallback := int64(1_000_000)
	return func(n int64) int64 {
		if i < len(draws) {
			v := draws[i]
			i++
			return v % n
		}
		fallback++
		return fallback % n
	}
}

func TestAccountNumberGeneratorRetriesOnForcedCollisions(t *testing.T) {
	store := memory.NewStore()
	taken := []string{"100000000007", "100000000008", "100000000009"}
	for i, number := range taken {
		store.SeedAccount("user"+strconv.Itoa(i), number, decimal.Zero)
	}

	// First three draws hit every pre-seeded number, the fourth is free.
	draws := []int64{7, 8, 9, 42}
	gen := services.NewAccountNumberGeneratorWithRand(store, sequenceRand(draws))

	number, err := gen.Next(context.Background())
	if err != nil {
		t.Fatalf("generate account number: %v", err)
	}
	if number != strconv.FormatInt(accountNumberMin+42, 10) {
		t.Fatalf("expected the fourth draw to win, got %s", number)
	}
	for _, existing := range taken {
		if number == existing {
			t.Fatalf("generator returned a taken number %s", number)
		}
	}
}

func TestAccountNumberGeneratorNeverReturnsTakenNumber(t *testing.T) {
	store := memory.NewStore()
	gen := services.NewAccountNumberGenerator(store)

	seen := make(map[string]struct{}, 10_000)
	for i := 0; i < 10_000; i++ {
		number, err := gen.Next(context.Background())
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}

		if len(number) != 12 {
			t.Fatalf("generation %d produced %q, want 12 digits", i, number)
		}
		if _, dup := seen[number]; dup {
			t.Fatalf("generation %d returned already-assigned number %s", i, number)
		}
		seen[number] = struct{}{}

		// Persist the number so later draws must avoid it.
		store.SeedAccount("gen"+strconv.Itoa(i), number, decimal.Zero)
	}
}
