package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 1000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}
}

func TestSampleErrorClassification(t *testing.T) {
	if !IsSampleError(NewEmptyColumnError("x")) {
		t.Error("empty column error should be a sample error")
	}
	if !IsSampleError(NewInsufficientSampleError("x", 2, 3)) {
		t.Error("insufficient sample error should be a sample error")
	}
	if !IsSampleError(NewNonFiniteError("x", 1)) {
		t.Error("non-finite error should be a sample error")
	}
	if IsSampleError(NewColumnNotFoundError("x")) {
		t.Error("lookup error must not be a sample error")
	}
	if !errors.Is(NewColumnTypeError("x", "numeric"), ErrColumnType) {
		t.Error("column type error should wrap ErrColumnType")
	}
}

func TestHashShort(t *testing.T) {
	h := NewHash([]byte("abc"))
	if len(h.Short()) != 12 {
		t.Errorf("Expected 12 char short hash, got %q", h.Short())
	}
	if h != NewHash([]byte("abc")) {
		t.Error("hash of equal input should be equal")
	}
}
