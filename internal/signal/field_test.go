package signal

import (
	"errors"
	"math"
	"testing"
)

func TestField_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		valid bool
	}{
		{"empty", Field{}, true},
		{"normal", Field{{1, 2}, {3, 4}}, true},
		{"with NaN", Field{{1, math.NaN()}}, false},
		{"with +Inf", Field{{math.Inf(1), 0}}, false},
		{"with -Inf", Field{{0}, {math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestZerosShape(t *testing.T) {
	f := Zeros(3, 4)
	rows, cols := f.Shape()
	if rows != 3 || cols != 4 {
		t.Fatalf("expected (3, 4), got (%d, %d)", rows, cols)
	}

	f[0] = append(f[0], 1)
	if f[1][0] != 0 {
		t.Error("appending to a row leaked into the next row")
	}
}

func TestField_Clone(t *testing.T) {
	src := Field{{1, 2}, {3, 4}}
	c := src.Clone()
	c[0][0] = 99
	if src[0][0] == 99 {
		t.Error("Clone did not create independent copy")
	}
	if Field(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestField_AddInPlace(t *testing.T) {
	a := Field{{1, 2}, {3, 4}}
	b := Field{{10, 20}, {30, 40}}
	if err := a.AddInPlace(b); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if a[0][0] != 11 || a[1][1] != 44 {
		t.Errorf("AddInPlace failed: got %v", a)
	}

	err := a.AddInPlace(Field{{1, 2, 3}})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("dimension mismatch should also be an invalid parameter, got %v", err)
	}
	if a[0][0] != 11 {
		t.Error("failed add mutated the field")
	}
}

func TestField_RowColumn(t *testing.T) {
	f := Field{{1, 2, 3}, {4, 5, 6}}
	row := f.Row(1)
	col := f.Column(2)
	if row[0] != 4 || row[2] != 6 {
		t.Errorf("Row failed: got %v", row)
	}
	if col[0] != 3 || col[1] != 6 {
		t.Errorf("Column failed: got %v", col)
	}
	row[0] = 99
	if f[1][0] == 99 {
		t.Error("Row should return a copy")
	}
}

func TestField_EqualRMS(t *testing.T) {
	f := Field{{3, -3}, {3, -3}}
	if !f.Equal(Field{{3, -3}, {3, -3 + 1e-12}}, 1e-9) {
		t.Error("expected fields within tolerance to be equal")
	}
	if f.Equal(Field{{3, -3}}, 1e-9) {
		t.Error("fields of different shape should not be equal")
	}

	if got := f.RMS(); math.Abs(got-3) > 1e-12 {
		t.Errorf("RMS = %v, want 3", got)
	}
}

func TestComponentError(t *testing.T) {
	err := &ComponentError{Index: 2, Label: "f1med", Wrapped: ErrUnknownFamily}
	expected := "component 2 (f1med): sigsynth: unknown waveform family"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrUnknownFamily) {
		t.Error("ComponentError should unwrap to the wrapped error")
	}
}
