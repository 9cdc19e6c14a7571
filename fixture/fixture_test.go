package fixture

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	topnerrors "github.com/axt/topnselect/errors"
)

type countingSink struct {
	ids    []int32
	scores []float64
}

func (s *countingSink) Sink(id int32, score float64) {
	s.ids = append(s.ids, id)
	s.scores = append(s.scores, score)
}

// =============================================================================
// Generation
// =============================================================================

func TestGenerateDeterministic(t *testing.T) {
	for _, src := range []Source{SourceRandom, SourceHashed} {
		t.Run(src.String(), func(t *testing.T) {
			a, err := Generate(5000, WithSeed(42), WithSource(src))
			if err != nil {
				t.Fatal(err)
			}
			b, err := Generate(5000, WithSeed(42), WithSource(src))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(a.IDs, b.IDs) || !slices.Equal(a.Scores, b.Scores) {
				t.Fatal("same seed produced different fixtures")
			}
			if a.Checksum() != b.Checksum() {
				t.Fatal("same fixture produced different checksums")
			}

			c, err := Generate(5000, WithSeed(43), WithSource(src))
			if err != nil {
				t.Fatal(err)
			}
			if slices.Equal(a.Scores, c.Scores) {
				t.Fatal("different seeds produced the same scores")
			}
		})
	}
}

func TestGenerateScoreRange(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		levels int
	}{
		{"random_continuous", SourceRandom, 0},
		{"random_levels", SourceRandom, 5},
		{"hashed_continuous", SourceHashed, 0},
		{"hashed_levels", SourceHashed, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Generate(10000, WithSource(tc.source), WithLevels(tc.levels))
			if err != nil {
				t.Fatal(err)
			}
			distinct := make(map[float64]struct{})
			for _, s := range f.Scores {
				if s < 0 || s >= 1 || math.IsNaN(s) {
					t.Fatalf("score %v outside [0, 1)", s)
				}
				distinct[s] = struct{}{}
			}
			if tc.levels > 0 && len(distinct) != tc.levels {
				t.Fatalf("%d distinct scores, want %d", len(distinct), tc.levels)
			}
			if tc.levels == 0 && len(distinct) < 9000 {
				t.Fatalf("only %d distinct continuous scores", len(distinct))
			}
		})
	}
}

func TestGenerateEmpty(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := Generate(n); !errors.Is(err, topnerrors.ErrEmptyFixture) {
			t.Errorf("Generate(%d) error = %v, want ErrEmptyFixture", n, err)
		}
	}
}

func TestPrefixAndFeed(t *testing.T) {
	f, err := Generate(100)
	if err != nil {
		t.Fatal(err)
	}
	p := f.Prefix(10)
	if p.Len() != 10 || !slices.Equal(p.IDs, f.IDs[:10]) {
		t.Fatal("Prefix(10) does not view the first ten items")
	}
	if f.Prefix(1000).Len() != 100 {
		t.Fatal("Prefix past the end is not clamped")
	}

	var s countingSink
	f.Feed(&s, 25)
	if !slices.Equal(s.ids, f.IDs[:25]) || !slices.Equal(s.scores, f.Scores[:25]) {
		t.Fatal("Feed(25) did not sink the first 25 items in order")
	}
	s = countingSink{}
	f.Feed(&s, 500)
	if len(s.ids) != 100 {
		t.Fatalf("Feed past the end sank %d items, want 100", len(s.ids))
	}
}

func TestChecksumDetectsMutation(t *testing.T) {
	f, err := Generate(3000)
	if err != nil {
		t.Fatal(err)
	}
	c := f.Clone()
	if c.Checksum() != f.Checksum() {
		t.Fatal("clone checksum differs")
	}
	c.Scores[2500] += 1e-9
	if c.Checksum() == f.Checksum() {
		t.Fatal("score change not detected")
	}
	c = f.Clone()
	c.IDs[0] ^= 1
	if c.Checksum() == f.Checksum() {
		t.Fatal("id change not detected")
	}
}

func TestFastRange32(t *testing.T) {
	tests := []struct {
		hash uint64
		n    uint32
		want uint32
	}{
		{0, 10, 0},
		{math.MaxUint64, 10, 9},
		{1 << 63, 10, 5},
		{12345, 0, 0},
	}
	for _, tc := range tests {
		if got := fastRange32(tc.hash, tc.n); got != tc.want {
			t.Errorf("fastRange32(%d, %d) = %d, want %d", tc.hash, tc.n, got, tc.want)
		}
	}
}

func TestParseSource(t *testing.T) {
	for _, s := range []Source{SourceRandom, SourceHashed} {
		if got, ok := ParseSource(s.String()); !ok || got != s {
			t.Errorf("ParseSource(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseSource("zipf"); ok {
		t.Error("ParseSource accepted an unknown name")
	}
}

// =============================================================================
// Files
// =============================================================================

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, src := range []Source{SourceRandom, SourceHashed} {
		t.Run(src.String(), func(t *testing.T) {
			f, err := Generate(4321, WithSeed(7), WithSource(src), WithLevels(100))
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(t.TempDir(), "fixture.tnsf")
			if err := f.Save(path); err != nil {
				t.Fatal(err)
			}

			stat, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if uint64(stat.Size()) != fileSize(4321) {
				t.Fatalf("file size = %d, want %d", stat.Size(), fileSize(4321))
			}

			got, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got.IDs, f.IDs) || !slices.Equal(got.Scores, f.Scores) {
				t.Fatal("loaded items differ")
			}
			if got.Seed != 7 || got.Source != src || got.Levels != 100 {
				t.Fatalf("loaded metadata = (%d, %s, %d)", got.Seed, got.Source, got.Levels)
			}
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.tnsf")
	big, _ := Generate(2000)
	small, _ := Generate(10, WithSeed(9))
	if err := big.Save(path); err != nil {
		t.Fatal(err)
	}
	if err := small.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 10 || got.Seed != 9 {
		t.Fatalf("loaded %d items with seed %d, want 10 with seed 9", got.Len(), got.Seed)
	}
}

func TestSaveEmpty(t *testing.T) {
	var f Fixture
	if err := f.Save(filepath.Join(t.TempDir(), "x")); !errors.Is(err, topnerrors.ErrEmptyFixture) {
		t.Fatalf("Save of empty fixture: err = %v", err)
	}
}

// corrupt saves a small fixture, applies mutate to the file bytes, and returns
// the error from loading it back.
func corrupt(t *testing.T, mutate func([]byte) []byte) error {
	t.Helper()
	f, err := Generate(64)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "fixture.tnsf")
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, mutate(data), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(path)
	return err
}

func TestLoadCorruption(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "flipped_score_bit",
			mutate:  func(d []byte) []byte { d[len(d)-1] ^= 0x01; return d },
			wantErr: topnerrors.ErrChecksumFailed,
		},
		{
			name:    "flipped_id_bit",
			mutate:  func(d []byte) []byte { d[headerSize] ^= 0x80; return d },
			wantErr: topnerrors.ErrChecksumFailed,
		},
		{
			name:    "bad_magic",
			mutate:  func(d []byte) []byte { d[0] = 'X'; return d },
			wantErr: topnerrors.ErrInvalidMagic,
		},
		{
			name:    "bad_version",
			mutate:  func(d []byte) []byte { d[4] = 9; return d },
			wantErr: topnerrors.ErrInvalidVersion,
		},
		{
			name:    "truncated_items",
			mutate:  func(d []byte) []byte { return d[:len(d)-8] },
			wantErr: topnerrors.ErrTruncatedFile,
		},
		{
			name:    "truncated_header",
			mutate:  func(d []byte) []byte { return d[:headerSize-1] },
			wantErr: topnerrors.ErrTruncatedFile,
		},
		{
			name:    "zero_count",
			mutate:  func(d []byte) []byte { clear(d[8:16]); return d },
			wantErr: topnerrors.ErrEmptyFixture,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := corrupt(t, tc.mutate); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Load error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.tnsf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load of missing file: err = %v, want ErrNotExist", err)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	h := header{
		Magic:    magic,
		Version:  version,
		Source:   SourceHashed,
		Count:    123456,
		Seed:     0xDEADBEEF,
		Checksum: 0x0123456789ABCDEF,
		Levels:   17,
	}
	buf := make([]byte, headerSize)
	h.encodeTo(buf)
	got, err := decodeHeader(buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != h {
		t.Fatalf("decoded %+v, want %+v", *got, h)
	}
	if _, err := decodeHeader(buf[:headerSize-1]); !errors.Is(err, topnerrors.ErrTruncatedFile) {
		t.Fatalf("short header: err = %v", err)
	}
}
