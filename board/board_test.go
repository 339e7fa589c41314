package board

import "testing"

func TestIdxRoundTrips(t *testing.T) {
	b := New(5, 7)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			v := Via{X: x, Y: y}
			got := b.ViaAt(b.Idx(v))
			if got != v {
				t.Fatalf("ViaAt(Idx(%v)) = %v, want %v", v, got, v)
			}
		}
	}
}

func TestContains(t *testing.T) {
	b := New(3, 3)
	cases := []struct {
		v    Via
		want bool
	}{
		{Via{0, 0}, true},
		{Via{2, 2}, true},
		{Via{-1, 0}, false},
		{Via{0, -1}, false},
		{Via{3, 0}, false},
		{Via{0, 3}, false},
	}
	for _, c := range cases {
		if got := b.Contains(c.v); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestAdd(t *testing.T) {
	v := Via{X: 2, Y: 3}.Add(Via{X: -1, Y: 5})
	if v != (Via{X: 1, Y: 8}) {
		t.Fatalf("got %v, want (1,8)", v)
	}
}
