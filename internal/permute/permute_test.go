package permute

import "testing"

func TestNew_Deterministic(t *testing.T) {
	t1 := New(1, 128)
	t2 := New(1, 128)

	for i := 0; i < 128; i++ {
		if t1.A[i] != t2.A[i] || t1.B[i] != t2.B[i] {
			t.Fatalf("lane %d: tables with the same (seed, N) diverged: a=(%d,%d) b=(%d,%d)",
				i, t1.A[i], t2.A[i], t1.B[i], t2.B[i])
		}
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	t1 := New(1, 64)
	t2 := New(2, 64)

	same := true
	for i := 0; i < 64; i++ {
		if t1.A[i] != t2.A[i] || t1.B[i] != t2.B[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("tables with different seeds should not produce identical permutations")
	}
}

func TestNew_BoundsRespected(t *testing.T) {
	tbl := New(42, 256)
	p := uint64(1)<<61 - 1

	for i := 0; i < tbl.N; i++ {
		if tbl.A[i] < 1 || tbl.A[i] > p-1 {
			t.Fatalf("a[%d] = %d out of [1, p-1]", i, tbl.A[i])
		}
		if tbl.B[i] > p-1 {
			t.Fatalf("b[%d] = %d out of [0, p-1]", i, tbl.B[i])
		}
	}
}

func TestApply_Deterministic(t *testing.T) {
	tbl := New(7, 8)
	h := uint64(123456789)

	v1 := tbl.Apply(3, h)
	v2 := tbl.Apply(3, h)
	if v1 != v2 {
		t.Errorf("Apply should be deterministic for the same lane and digest: %d != %d", v1, v2)
	}
}

func TestMulMod_NoOverflow(t *testing.T) {
	p := uint64(1)<<61 - 1
	a := p - 1
	b := p - 1
	got := mulMod(a, b, p)
	if got >= p {
		t.Errorf("mulMod result %d should be < p (%d)", got, p)
	}
}
