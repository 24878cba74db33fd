package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestFromAffine(t *testing.T) {
	// Row-major linear block: rows (1,2,3), (4,5,6), (7,8,9).
	m := FromAffine([9]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, Vec3{10, 20, 30})
	result := m.TransformPoint(Vec3{1, 1, 1})

	// Each component is the row sum plus translation.
	expected := Vec3{1 + 2 + 3 + 10, 4 + 5 + 6 + 20, 7 + 8 + 9 + 30}
	if result != expected {
		t.Errorf("FromAffine TransformPoint: got %v, want %v", result, expected)
	}
}

func TestMulComposition(t *testing.T) {
	// Mul applies the right operand first: scaling then translating is not
	// the same as translating then scaling.
	scaleThenTranslate := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	result := scaleThenTranslate.TransformPoint(Vec3{1, 0, 0})

	expected := Vec3{12, 0, 0}
	if result != expected {
		t.Errorf("compose TransformPoint: got %v, want %v", result, expected)
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float64
	}{
		{"identity", Identity(), 1},
		{"uniform scale", Scale(2, 2, 2), 8},
		{"non-uniform scale", Scale(2, 3, 4), 24},
		{"translation only", Translate(5, -3, 7), 1},
		{"single axis mirror", Scale(-1, 1, 1), -1},
		{"double mirror cancels", Scale(-1, -1, 1), 1},
		{"mirror with translation", Translate(1, 2, 3).Mul(Scale(1, -1, 1)), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Determinant()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Determinant() = %v, want %v", got, tt.want)
			}
		})
	}
}
