package utils

import (
	"math"
	"testing"
)

func AssertTrue(t *testing.T, a bool) {
	t.Helper()
	if !a {
		t.Fatalf("Expected true, got false")
	}
}

func AssertEqual(t *testing.T, a interface{}, b interface{}) {
	t.Helper()
	if a != b {
		t.Fatalf("Expected equal: %v != %v\n", a, b)
	}
}

// AssertClose fails unless a and b are within tol of each other.
// Two NaNs are considered close.
func AssertClose(t *testing.T, a, b, tol float64) {
	t.Helper()
	if math.IsNaN(a) && math.IsNaN(b) {
		return
	}
	if math.Abs(a-b) > tol {
		t.Fatalf("Expected %v within %v of %v\n", a, tol, b)
	}
}
