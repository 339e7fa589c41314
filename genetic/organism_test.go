package genetic

import (
	"math/rand/v2"
	"testing"
)

func requirePermutation(t *testing.T, n int, got []int) {
	t.Helper()
	if len(got) != n {
		t.Fatalf("got %d genes, want %d", len(got), n)
	}
	seen := make([]bool, n)
	for _, g := range got {
		if g < 0 || g >= n {
			t.Fatalf("gene %d out of range [0,%d)", g, n)
		}
		if seen[g] {
			t.Fatalf("gene %d emitted twice in %v", g, got)
		}
		seen[g] = true
	}
}

func TestDecodeIsAlwaysAPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		n := 1 + trial%9
		o := randomOrganism(n, rng)
		requirePermutation(t, n, o.decode())
	}
}

func TestDecodeBreaksCycles(t *testing.T) {
	// genes[i] = (i+1) mod n is a single cycle through every index; no
	// element's dependency has been emitted before the sweep starts, so
	// decode must force-emit one element per sweep rather than looping.
	o := organism{genes: []int{1, 2, 0}}
	got := o.decode()
	requirePermutation(t, 3, got)
}

func TestDecodeNoDependency(t *testing.T) {
	// Every gene depends on index 0: once 0 is emitted (forced, since
	// nothing depends on nothing initially), the rest follow in one sweep.
	o := organism{genes: []int{0, 0, 0, 0}}
	got := o.decode()
	requirePermutation(t, 4, got)
	if got[0] != 0 {
		t.Fatalf("expected gene 0 to be forced out first, got %v", got)
	}
}

func TestMutateChangesAtMostOneGene(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	o := randomOrganism(8, rng)
	before := append([]int(nil), o.genes...)
	o.mutate(rng)

	diffs := 0
	for i := range before {
		if before[i] != o.genes[i] {
			diffs++
		}
	}
	if diffs > 1 {
		t.Fatalf("mutate changed %d genes, want at most 1: before=%v after=%v", diffs, before, o.genes)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	o := randomOrganism(5, rng)
	c := o.clone()
	c.genes[0] = -1
	if o.genes[0] == -1 {
		t.Fatal("mutating the clone's genes affected the original")
	}
}
