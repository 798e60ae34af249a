package compare

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		tol  float64
		want bool
	}{
		{"equal", 1.0, 1.0, 1e-6, true},
		{"within tolerance", 1.0, 1.0 + 1e-7, 1e-6, true},
		{"outside tolerance", 1.0, 1.001, 1e-6, false},
		{"negative values", -2.5, -2.5, 1e-6, true},
		{"sign flip", 0.5, -0.5, 1e-6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scalars(tt.a, tt.b, tt.tol); got != tt.want {
				t.Errorf("Scalars(%g, %g, %g) = %v, want %v", tt.a, tt.b, tt.tol, got, tt.want)
			}
		})
	}
}

func TestVecs(t *testing.T) {
	a := v3.Vec{X: 1, Y: 2, Z: 3}
	if !Vecs(a, v3.Vec{X: 1, Y: 2, Z: 3}, DefaultTolerance) {
		t.Error("identical vectors reported unequal")
	}
	if Vecs(a, v3.Vec{X: 1, Y: 2, Z: 3.01}, DefaultTolerance) {
		t.Error("differing Z reported equal")
	}
}

func TestTransforms(t *testing.T) {
	a := sdf.Translate3d(v3.Vec{X: 1, Y: 2, Z: 3})

	t.Run("same translation", func(t *testing.T) {
		b := sdf.Translate3d(v3.Vec{X: 1, Y: 2, Z: 3})
		if !Transforms(a, b, DefaultTolerance) {
			t.Error("equal transforms reported unequal")
		}
	})

	t.Run("different translation", func(t *testing.T) {
		b := sdf.Translate3d(v3.Vec{X: 1, Y: 2, Z: 3.5})
		if Transforms(a, b, DefaultTolerance) {
			t.Error("different transforms reported equal")
		}
	})

	t.Run("rotation differs from identity", func(t *testing.T) {
		if Transforms(sdf.Identity3d(), sdf.RotateZ(0.5), DefaultTolerance) {
			t.Error("rotation reported equal to identity")
		}
	})

	t.Run("scale differs from identity", func(t *testing.T) {
		if Transforms(sdf.Identity3d(), sdf.Scale3d(v3.Vec{X: 2, Y: 2, Z: 2}), DefaultTolerance) {
			t.Error("scale reported equal to identity")
		}
	})
}

func TestProps(t *testing.T) {
	base := map[string]any{"radius": 0.5, "sides": 6, "keep": true, "mode": "additive"}

	tests := []struct {
		name string
		b    map[string]any
		want bool
	}{
		{"identical", map[string]any{"radius": 0.5, "sides": 6, "keep": true, "mode": "additive"}, true},
		{"float within tolerance", map[string]any{"radius": 0.5 + 1e-8, "sides": 6, "keep": true, "mode": "additive"}, true},
		{"float changed", map[string]any{"radius": 0.6, "sides": 6, "keep": true, "mode": "additive"}, false},
		{"int changed", map[string]any{"radius": 0.5, "sides": 8, "keep": true, "mode": "additive"}, false},
		{"bool changed", map[string]any{"radius": 0.5, "sides": 6, "keep": false, "mode": "additive"}, false},
		{"string changed", map[string]any{"radius": 0.5, "sides": 6, "keep": true, "mode": "negative"}, false},
		{"missing key", map[string]any{"radius": 0.5, "sides": 6, "keep": true}, false},
		{"extra key", map[string]any{"radius": 0.5, "sides": 6, "keep": true, "mode": "additive", "x": 1}, false},
		{"type mismatch", map[string]any{"radius": "0.5", "sides": 6, "keep": true, "mode": "additive"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Props(base, tt.b, DefaultTolerance); got != tt.want {
				t.Errorf("Props() = %v, want %v", got, tt.want)
			}
		})
	}
}
