package topnselect

import (
	"encoding/binary"
	"errors"
	"hash/fnv"
	"math"
	randv2 "math/rand/v2"
	"slices"
	"testing"

	topnerrors "github.com/axt/topnselect/errors"
	"github.com/axt/topnselect/internal/order"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *randv2.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return randv2.New(randv2.NewPCG(testSeed1^s1, testSeed2^s2))
}

func generateItems(rng *randv2.Rand, n int) ([]int32, []float64) {
	ids := make([]int32, n)
	scores := make([]float64, n)
	for i := range n {
		ids[i] = int32(rng.Uint32())
		scores[i] = rng.Float64()
	}
	return ids, scores
}

func newVariant(t testing.TB, v Variant, maxItems, topN int, opts ...Option) Selector {
	t.Helper()
	sel, err := New(maxItems, topN, append([]Option{WithVariant(v)}, opts...)...)
	if err != nil {
		t.Fatalf("New(%s): %v", v, err)
	}
	return sel
}

// checkResult compares got against the reference: exact order for the
// baseline heap, set equality for everything else.
func checkResult(t *testing.T, v Variant, got, want []int32) {
	t.Helper()
	if v.Algorithm.Ordered() {
		if !slices.Equal(got, want) {
			t.Fatalf("%s: got %v, want %v in order", v, got, want)
		}
		return
	}
	if !order.SameSet(got, want) {
		t.Fatalf("%s: got %v, want the set %v", v, got, want)
	}
}

// =============================================================================
// Scenarios shared by every variant
// =============================================================================

func TestSelectorScenario(t *testing.T) {
	ids := []int32{0, 1, 2, 3}
	scores := []float64{0.1, 0.9, 0.9, 0.5}
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			sel := newVariant(t, v, len(ids), 2)
			for i := range ids {
				sel.Sink(ids[i], scores[i])
			}
			checkResult(t, v, sel.TopN(2), []int32{1, 2})
		})
	}
}

func TestSelectorBoundaries(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			if got := newVariant(t, v, 0, 3).TopN(3); len(got) != 0 {
				t.Fatalf("empty selector: TopN = %v", got)
			}

			sel := newVariant(t, v, 3, 0)
			sel.Sink(1, 0.3)
			sel.Sink(2, 0.2)
			if got := sel.TopN(0); len(got) != 0 {
				t.Fatalf("TopN(0) = %v", got)
			}

			// N at least M returns everything.
			sel = newVariant(t, v, 3, 5)
			sel.Sink(1, 0.3)
			sel.Sink(2, 0.2)
			sel.Sink(3, 0.7)
			checkResult(t, v, sel.TopN(5), []int32{3, 1, 2})
		})
	}
}

func TestSelectorMatchesReference(t *testing.T) {
	tests := []struct {
		name  string
		items int
		topN  int
	}{
		{"top_one", 2000, 1},
		{"small", 100, 10},
		{"medium", 20000, 1000},
		{"half", 5000, 2500},
		{"all", 300, 300},
	}
	for _, tc := range tests {
		for _, v := range Variants() {
			t.Run(tc.name+"_"+v.String(), func(t *testing.T) {
				rng := newTestRNG(t)
				ids, scores := generateItems(rng, tc.items)
				sel := newVariant(t, v, tc.items, tc.topN)
				for i := range ids {
					sel.Sink(ids[i], scores[i])
				}
				checkResult(t, v, sel.TopN(tc.topN), order.TopN(ids, scores, tc.topN))
			})
		}
	}
}

// TestSelectorTies uses few distinct scores so most decisions come down to
// the identifier tie-break.
func TestSelectorTies(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			rng := newTestRNG(t)
			const n, topN = 4000, 150
			ids := make([]int32, n)
			scores := make([]float64, n)
			for i := range n {
				ids[i] = int32(i)
				scores[i] = float64(rng.IntN(4))
			}
			rng.Shuffle(n, func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

			sel := newVariant(t, v, n, topN)
			for i := range ids {
				sel.Sink(ids[i], scores[i])
			}
			checkResult(t, v, sel.TopN(topN), order.TopN(ids, scores, topN))
		})
	}
}

func TestQuickselectRepeatedQuery(t *testing.T) {
	rng := newTestRNG(t)
	ids, scores := generateItems(rng, 10000)
	for _, p := range []PivotStrategy{PivotMiddle, PivotMedian3, PivotRandom} {
		sel := newVariant(t, Variant{Algorithm: AlgoQuickselect, Pivot: p}, len(ids), 50)
		for i := range ids {
			sel.Sink(ids[i], scores[i])
		}
		first := sel.TopN(50)
		if second := sel.TopN(50); !order.SameSet(first, second) {
			t.Fatalf("%s: repeated query changed the result", p)
		}
	}
}

func TestFixedLoadFactorOptions(t *testing.T) {
	rng := newTestRNG(t)
	ids, scores := generateItems(rng, 8000)
	want := order.TopN(ids, scores, 40)
	for _, lf := range []float64{1, 1.5, 2, 10} {
		sel := newVariant(t, Variant{Algorithm: AlgoQuickselectFixed}, len(ids), 40,
			WithLoadFactor(lf), WithMinBufferCapacity(0))
		for i := range ids {
			sel.Sink(ids[i], scores[i])
		}
		if got := sel.TopN(40); !order.SameSet(got, want) {
			t.Fatalf("load factor %v: wrong top set", lf)
		}
	}
}

// =============================================================================
// Construction
// =============================================================================

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		maxItems int
		topN     int
		opts     []Option
		wantErr  error
	}{
		{"negative_top_n", 10, -1, nil, topnerrors.ErrInvalidTopN},
		{"negative_capacity", -1, 10, nil, topnerrors.ErrInvalidCapacity},
		{"unknown_algorithm", 10, 10, []Option{WithAlgorithm(AlgorithmID(42))}, topnerrors.ErrUnknownAlgorithm},
		{"unknown_pivot", 10, 10, []Option{WithPivot(PivotStrategy(7))}, topnerrors.ErrUnimplementedStrategy},
		{"zero_load_factor", 10, 10, []Option{WithAlgorithm(AlgoQuickselectFixed), WithLoadFactor(0)}, topnerrors.ErrInvalidLoadFactor},
		{"nan_load_factor", 10, 10, []Option{WithAlgorithm(AlgoQuickselectFixed), WithLoadFactor(math.NaN())}, topnerrors.ErrInvalidLoadFactor},
		{"inf_load_factor", 10, 10, []Option{WithAlgorithm(AlgoQuickselectFixed), WithLoadFactor(math.Inf(1))}, topnerrors.ErrInvalidLoadFactor},
		{"huge_load_factor", 10, 10, []Option{WithAlgorithm(AlgoQuickselectFixed), WithLoadFactor(1e300)}, topnerrors.ErrInvalidLoadFactor},
		{"negative_min_buffer", 10, 10, []Option{WithAlgorithm(AlgoQuickselectFixed), WithMinBufferCapacity(-1)}, topnerrors.ErrInvalidCapacity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := New(tc.maxItems, tc.topN, tc.opts...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("New error = %v, want %v", err, tc.wantErr)
			}
			if sel != nil {
				t.Fatal("New returned a selector alongside an error")
			}
		})
	}
}

func TestNewIgnoresPivotForHeaps(t *testing.T) {
	for _, algo := range []AlgorithmID{AlgoBoundedHeap, AlgoBaselineHeap} {
		if _, err := New(10, 5, WithAlgorithm(algo), WithPivot(PivotStrategy(7))); err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	sel, err := New(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	for i := range 25 {
		sel.Sink(int32(i), float64(i))
	}
	if got := sel.TopN(3); !order.SameSet(got, []int32{24, 23, 22}) {
		t.Fatalf("TopN(3) = %v", got)
	}
}

// =============================================================================
// Variant names
// =============================================================================

func TestVariantNames(t *testing.T) {
	want := []string{"qs-middle", "qs-median3", "qs-random", "qsfixed-middle", "heap", "baseline"}
	var got []string
	for _, v := range Variants() {
		got = append(got, v.String())
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Variants = %v, want %v", got, want)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		name    string
		want    Variant
		wantErr bool
	}{
		{"qs-middle", Variant{AlgoQuickselect, PivotMiddle}, false},
		{"qs-median3", Variant{AlgoQuickselect, PivotMedian3}, false},
		{"QS-Random", Variant{AlgoQuickselect, PivotRandom}, false},
		{"qsfixed-median3", Variant{AlgoQuickselectFixed, PivotMedian3}, false},
		{"qsfixed", Variant{AlgoQuickselectFixed, PivotMiddle}, false},
		{" heap ", Variant{Algorithm: AlgoBoundedHeap}, false},
		{"baseline", Variant{Algorithm: AlgoBaselineHeap}, false},
		{"heap-middle", Variant{}, true},
		{"qs-median5", Variant{}, true},
		{"introselect", Variant{}, true},
		{"", Variant{}, true},
	}
	for _, tc := range tests {
		got, err := ParseVariant(tc.name)
		if tc.wantErr {
			if !errors.Is(err, topnerrors.ErrUnknownVariant) {
				t.Errorf("ParseVariant(%q) error = %v, want ErrUnknownVariant", tc.name, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseVariant(%q) = %v, %v; want %v", tc.name, got, err, tc.want)
		}
	}
	for _, v := range Variants() {
		if got, err := ParseVariant(v.String()); err != nil || got != v {
			t.Errorf("round trip of %s = %v, %v", v, got, err)
		}
	}
}

func TestAlgorithmProperties(t *testing.T) {
	tests := []struct {
		algo      AlgorithmID
		name      string
		usesPivot bool
		ordered   bool
	}{
		{AlgoQuickselect, "qs", true, false},
		{AlgoQuickselectFixed, "qsfixed", true, false},
		{AlgoBoundedHeap, "heap", false, false},
		{AlgoBaselineHeap, "baseline", false, true},
		{AlgorithmID(99), "unknown", false, false},
	}
	for _, tc := range tests {
		if tc.algo.String() != tc.name || tc.algo.UsesPivot() != tc.usesPivot || tc.algo.Ordered() != tc.ordered {
			t.Errorf("%d: got (%s, %v, %v), want (%s, %v, %v)", uint16(tc.algo),
				tc.algo.String(), tc.algo.UsesPivot(), tc.algo.Ordered(),
				tc.name, tc.usesPivot, tc.ordered)
		}
	}
}
