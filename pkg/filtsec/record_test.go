package filtsec

import "testing"

func TestRecordStages(t *testing.T) {
	t.Parallel()

	r := Record{
		Structure: StructureSOS,
		ValueType: Float64,
		Values:    []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	stages := r.Stages()
	if len(stages) != 2 {
		t.Fatalf("stage count = %d, want 2", len(stages))
	}
	if stages[0] != (Stage{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}) {
		t.Fatalf("stage 0 = %+v", stages[0])
	}
	if stages[1] != (Stage{B0: 6, B1: 7, B2: 8, A1: 9, A2: 10}) {
		t.Fatalf("stage 1 = %+v", stages[1])
	}

	poly := Record{Structure: StructurePolynomial, Values: []float64{1, 2}}
	if poly.Stages() != nil {
		t.Fatalf("polynomial record produced stages")
	}
}

func TestRecordPolynomial(t *testing.T) {
	t.Parallel()

	r := Record{
		Structure: StructurePolynomial,
		ValueType: Float32,
		Values:    []float64{1, 0.5, 1, -0.25},
	}
	b, a := r.Polynomial()
	if !valuesEqual(b, []float64{1, 0.5}) || !valuesEqual(a, []float64{1, -0.25}) {
		t.Fatalf("b = %v, a = %v", b, a)
	}

	sos := Record{Structure: StructureSOS, Values: []float64{1, 0, 0, 0, 0}}
	if b, a := sos.Polynomial(); b != nil || a != nil {
		t.Fatalf("sos record produced polynomial vectors")
	}
}

func TestRecordOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rec  Record
		want int
	}{
		{Record{Structure: StructureSOS, Values: make([]float64, 10)}, 4},
		{Record{Structure: StructureSOS}, 0},
		{Record{Structure: StructurePolynomial, Values: make([]float64, 6)}, 2},
		{Record{Structure: StructurePolynomial}, 0},
	}
	for _, tc := range cases {
		if got := tc.rec.Order(); got != tc.want {
			t.Fatalf("order of %+v = %d, want %d", tc.rec, got, tc.want)
		}
	}
}

func TestSectionFind(t *testing.T) {
	t.Parallel()

	sec := Section{
		{Name: "alpha"},
		{Name: "beta"},
		{Name: "alpha"},
	}
	if i, ok := sec.Find("beta"); !ok || i != 1 {
		t.Fatalf("Find(beta) = %d, %v", i, ok)
	}
	if i, ok := sec.Find("alpha"); !ok || i != 0 {
		t.Fatalf("Find(alpha) = %d, %v", i, ok)
	}
	if _, ok := sec.Find("missing"); ok {
		t.Fatalf("Find(missing) succeeded")
	}
}

func TestParseSchema(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Schema{"a": SchemaA, "A": SchemaA, "b": SchemaB, "B": SchemaB} {
		got, err := ParseSchema(in)
		if err != nil || got != want {
			t.Fatalf("ParseSchema(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseSchema("c"); err == nil {
		t.Fatalf("ParseSchema(c) succeeded")
	}
}
