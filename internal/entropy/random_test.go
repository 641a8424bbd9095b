package entropy

import (
	"math"
	"testing"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	for i := 0; i < 20; i++ {
		x, y := a.Float(), b.Float()
		if x != y {
			t.Fatalf("draw %d: expected equal values, got %v and %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("draw %d: expected value in [0,1), got %v", i, x)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	want := []float64{0.1, 0.9, 0.1, 0.9}
	for i, w := range want {
		if got := s.Float(); got != w {
			t.Fatalf("draw %d: expected %v, got %v", i, w, got)
		}
	}

	if got := NewSequence().Float(); got != 0 {
		t.Fatalf("expected empty sequence to yield 0, got %v", got)
	}
}

func TestCryptoRange(t *testing.T) {
	var c Crypto
	for i := 0; i < 100; i++ {
		if v := c.Float(); v < 0 || v >= 1 {
			t.Fatalf("expected value in [0,1), got %v", v)
		}
	}
}

func TestNormalMoments(t *testing.T) {
	src := NewSeeded(42)
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := Normal(src, 50, 15)
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	sd := math.Sqrt(sumSq/n - mean*mean)
	if math.Abs(mean-50) > 1 {
		t.Fatalf("expected mean near 50, got %.2f", mean)
	}
	if math.Abs(sd-15) > 1 {
		t.Fatalf("expected stddev near 15, got %.2f", sd)
	}
}

func TestNormalHandlesZeroDraw(t *testing.T) {
	v := Normal(NewSequence(0, 0), 50, 15)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		t.Fatalf("expected finite value, got %v", v)
	}
}

func TestDefaultSource(t *testing.T) {
	if _, ok := Default("", 0).(Crypto); !ok {
		t.Fatal("expected crypto source without key or seed")
	}
	if _, ok := Default("", 9).(*Seeded); !ok {
		t.Fatal("expected seeded source when seed is set")
	}
	if _, ok := Default("key", 9).(*Client); !ok {
		t.Fatal("expected random.org client when key is set")
	}
}

func TestNilClientFallsBack(t *testing.T) {
	var c *Client
	if c.Enabled() {
		t.Fatal("expected nil client to be disabled")
	}
	if v := c.Float(); v < 0 || v >= 1 {
		t.Fatalf("expected value in [0,1), got %v", v)
	}
}
