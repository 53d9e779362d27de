package cerr

import (
	"fmt"
	"testing"
)

func TestErrorfKind(t *testing.T) {
	err := Errorf(UnsupportedNode, "bad node %d", 7)
	kind, ok := KindOf(err)
	if !ok || kind != UnsupportedNode {
		t.Fatalf("KindOf = (%v, %v), want (%v, true)", kind, ok, UnsupportedNode)
	}
	if err.Error() != "bad node 7" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestNewWrapsAndUnwraps(t *testing.T) {
	inner := fmt.Errorf("underlying")
	wrapped := New(InvalidContinue, inner)
	kind, ok := KindOf(wrapped)
	if !ok || kind != InvalidContinue {
		t.Fatalf("KindOf = (%v, %v)", kind, ok)
	}
	type unwrapper interface{ Unwrap() error }
	u, ok := wrapped.(unwrapper)
	if !ok || u.Unwrap() != inner {
		t.Errorf("Unwrap() = %v, want %v", u.Unwrap(), inner)
	}
}

func TestNewNilIsNoop(t *testing.T) {
	if New(UnsupportedNode, nil) != nil {
		t.Error("New(kind, nil) should return nil")
	}
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(fmt.Errorf("plain"))
	if ok {
		t.Error("KindOf on a plain error should return ok == false")
	}
}
