package body

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/astrogolf/internal/dynamo"
	"github.com/san-kum/astrogolf/internal/vector"
)

func sunEarth(t *testing.T) *Set {
	t.Helper()
	s, err := NewSet(
		[][]float64{{0, 0, 0}, {1, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 6.3}},
		[]float64{1, 0.000003003},
	)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return s
}

func assertSynced(t *testing.T, s *Set) {
	t.Helper()
	if len(s.State()) != s.Len()*Cols || len(s.Masses()) != s.Len() {
		t.Fatalf("table has %d values for %d masses", len(s.State()), len(s.Masses()))
	}
}

func TestNewSet(t *testing.T) {
	s := sunEarth(t)
	assertSynced(t, s)

	row, err := s.Row(1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0, 0, 0, 0, 6.3}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestNewSetShortRowsZeroFill(t *testing.T) {
	s, err := NewSet([][]float64{{1}}, [][]float64{{0, 2}}, []float64{3})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := s.Get(0)
	if b.Pos != (vector.Vector{X: 1}) || b.Vel != (vector.Vector{Y: 2}) || b.Mass != 3 {
		t.Errorf("Get(0) = %+v", b)
	}
}

func TestNewSetErrors(t *testing.T) {
	tests := []struct {
		name   string
		pos    [][]float64
		vel    [][]float64
		masses []float64
		want   error
	}{
		{"missing mass", [][]float64{{0}}, [][]float64{{0}}, nil, ErrDimensionMismatch},
		{"missing velocity", [][]float64{{0}}, nil, []float64{1}, ErrDimensionMismatch},
		{"four components", [][]float64{{0, 0, 0, 0}}, [][]float64{{0}}, []float64{1}, vector.ErrTooManyComponents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet(tt.pos, tt.vel, tt.masses)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := NewSetFromState(make([]float64, 7), []float64{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("NewSetFromState error = %v", err)
	}
}

func TestGetIsACopy(t *testing.T) {
	s := sunEarth(t)

	b, err := s.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	b.Pos.X = 42
	b.Vel.Z = -1

	row, _ := s.Row(1)
	if row[0] != 1 || row[5] != 6.3 {
		t.Errorf("writing to the projection changed the table: %v", row)
	}

	if _, err := s.Get(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Get(2) error = %v", err)
	}
}

func TestStateDoesNotAlias(t *testing.T) {
	s := sunEarth(t)
	st := s.State()
	st[0] = 99
	if s.State()[0] != 0 {
		t.Error("State() aliases the table")
	}

	m := s.Masses()
	m[0] = 99
	if s.Mass(0) != 1 {
		t.Error("Masses() aliases the mass slice")
	}
}

func TestMutations(t *testing.T) {
	s := sunEarth(t)

	s.Append(vector.Vector{X: 5}, vector.Vector{Z: 3}, 0.000954)
	assertSynced(t, s)
	if s.Len() != 3 || s.Mass(2) != 0.000954 {
		t.Fatalf("after Append: len %d", s.Len())
	}

	if err := s.SetRow(2, vector.Vector{X: 6}, vector.Vector{Z: 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddVelocity(2, vector.Vector{X: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPosition(0, vector.Vector{Y: -1}); err != nil {
		t.Fatal(err)
	}
	row, _ := s.Row(2)
	if row[0] != 6 || row[3] != 1 || row[5] != 2 {
		t.Errorf("row 2 = %v", row)
	}
	row, _ = s.Row(0)
	if row[1] != -1 {
		t.Errorf("row 0 = %v", row)
	}

	if err := s.Keep([]bool{true, false, true}); err != nil {
		t.Fatal(err)
	}
	assertSynced(t, s)
	if s.Len() != 2 || s.Mass(1) != 0.000954 {
		t.Errorf("after Keep: len %d, masses %v", s.Len(), s.Masses())
	}

	if err := s.Keep([]bool{true}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Keep with short mask error = %v", err)
	}

	if err := s.Truncate(1); err != nil {
		t.Fatal(err)
	}
	assertSynced(t, s)
	if s.Len() != 1 {
		t.Errorf("after Truncate: len %d", s.Len())
	}

	if err := s.Truncate(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Truncate(5) error = %v", err)
	}

	if err := s.Truncate(0); err != nil {
		t.Fatal(err)
	}
	if s.Table() != nil {
		t.Error("empty set should have a nil table")
	}
}

func TestSetState(t *testing.T) {
	s := sunEarth(t)
	if err := s.SetState(make(dynamo.State, 6)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("SetState error = %v", err)
	}
	if err := s.SetState(make(dynamo.State, 12)); err != nil {
		t.Errorf("SetState error = %v", err)
	}
}

func TestTable(t *testing.T) {
	s := sunEarth(t)
	table := s.Table()
	r, c := table.Dims()
	if r != 2 || c != Cols {
		t.Fatalf("Table dims = %dx%d", r, c)
	}
	if table.At(1, 5) != 6.3 {
		t.Errorf("Table(1,5) = %v", table.At(1, 5))
	}
	table.Set(1, 5, 0)
	if s.State()[11] != 6.3 {
		t.Error("Table aliases the set")
	}
}

func TestNormalize(t *testing.T) {
	s, err := NewSet(
		[][]float64{{0, 0, 0}, {3, 0, 0}},
		[][]float64{{0, 1, 0}, {0, -2, 0}},
		[]float64{2, 1},
	)
	if err != nil {
		t.Fatal(err)
	}

	cm := s.CenterOfMass()
	if math.Abs(cm[0]-1) > 1e-12 || math.Abs(cm[4]) > 1e-12 {
		t.Errorf("CenterOfMass = %v", cm)
	}

	s.Normalize()
	cm = s.CenterOfMass()
	for j, v := range cm {
		if math.Abs(v) > 1e-12 {
			t.Errorf("after Normalize cm[%d] = %v", j, v)
		}
	}
	row, _ := s.Row(1)
	if math.Abs(row[0]-2) > 1e-12 {
		t.Errorf("row 1 x = %v, want 2", row[0])
	}
}

func TestBodyState(t *testing.T) {
	b := New(1, vector.Vector{X: 1, Y: 2, Z: 3}, vector.Vector{X: 4, Y: 5, Z: 6})
	st := b.State()
	for i, want := range []float64{1, 2, 3, 4, 5, 6} {
		if st[i] != want {
			t.Errorf("State()[%d] = %v", i, st[i])
		}
	}
	if err := b.SetState(dynamo.State{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("SetState error = %v", err)
	}
}
