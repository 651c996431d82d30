package hashutil

import "testing"

func TestBytes_Stable(t *testing.T) {
	a := Bytes([]byte("ATCGATCG"))
	b := Bytes([]byte("ATCGATCG"))
	if a != b {
		t.Errorf("identical input must hash identically: %d != %d", a, b)
	}
}

func TestBytes_String_Agree(t *testing.T) {
	s := "the quick brown fox"
	if Bytes([]byte(s)) != String(s) {
		t.Error("Bytes and String must agree for the same content")
	}
}

func TestUint64_LittleEndian(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		same bool
	}{
		{"same value", 12345, 12345, true},
		{"different value", 1, 2, false},
		{"zero vs nonzero", 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Uint64(tt.a) == Uint64(tt.b)
			if got != tt.same {
				t.Errorf("Uint64(%d)==Uint64(%d) = %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestDigest61_Bounded(t *testing.T) {
	for _, h := range []uint64{0, 1, Prime61, Prime61 + 1, ^uint64(0)} {
		d := Digest61(h)
		if d >= Prime61 {
			t.Errorf("Digest61(%d) = %d, want < %d", h, d, Prime61)
		}
	}
}

func TestLaneSlice_OrderSensitive(t *testing.T) {
	a := LaneSlice([]uint64{1, 2, 3})
	b := LaneSlice([]uint64{3, 2, 1})
	if a == b {
		t.Error("LaneSlice should be order-sensitive across lane permutations")
	}
	c := LaneSlice([]uint64{1, 2, 3})
	if a != c {
		t.Error("LaneSlice must be deterministic for identical input")
	}
}

func TestDigester_MatchesLaneSlice(t *testing.T) {
	lanes := []uint64{42, 7, 9999}
	d := NewDigester()
	for _, l := range lanes {
		d.WriteUint64(l)
	}
	if d.Sum64() != LaneSlice(lanes) {
		t.Error("Digester accumulation should match LaneSlice one-shot helper")
	}
}
