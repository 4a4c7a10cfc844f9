package trace

import (
	"reflect"
	"testing"

	"lineagegraph/internal/ident"
)

func TestArrangementRecordAndValuesAt(t *testing.T) {
	a := New()
	a.Record(1, 2, 0, 1)
	a.Record(1, 3, 0, 1)

	got := ident.Sorted(a.ValuesAt(1, 0))
	want := []ident.Name{2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ValuesAt(1, 0) = %v, want %v", got, want)
	}
}

func TestArrangementRetractThenAssert(t *testing.T) {
	a := New()
	a.Record(1, 2, 0, 1)
	a.Record(1, 2, 1, -1)
	a.Record(1, 5, 1, 1)

	if got := a.ValuesAt(1, 1); !reflect.DeepEqual(ident.Sorted(got), []ident.Name{5}) {
		t.Fatalf("ValuesAt(1, 1) = %v, want [5]", got)
	}
	// Before the retraction is visible, the old value still holds.
	if got := a.ValuesAt(1, 0); !reflect.DeepEqual(ident.Sorted(got), []ident.Name{2}) {
		t.Fatalf("ValuesAt(1, 0) = %v, want [2]", got)
	}
}

func TestArrangementNegativeMultiplicityPanics(t *testing.T) {
	a := New()
	a.Record(1, 2, 0, -1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on negative multiplicity")
		}
	}()
	a.ValuesAt(1, 0)
}

func TestArrangementUnknownKeyIsEmpty(t *testing.T) {
	a := New()
	if got := a.ValuesAt(99, 0); got != nil {
		t.Fatalf("ValuesAt(unknown) = %v, want nil", got)
	}
}

func TestArrangementCompactDropsZeroedValues(t *testing.T) {
	a := New()
	a.Record(1, 2, 0, 1)
	a.Record(1, 2, 1, -1)
	a.Record(1, 3, 1, 1)

	a.Compact(1)

	updates := a.byKey[1]
	for _, u := range updates {
		if u.Value == 2 {
			t.Fatalf("expected value 2 to be fully compacted away, found %+v", u)
		}
	}

	got := ident.Sorted(a.ValuesAt(1, 1))
	want := []ident.Name{3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ValuesAt after compact = %v, want %v", got, want)
	}
}

func TestArrangementDrainOmitsEmptyKeys(t *testing.T) {
	a := New()
	a.Record(1, 2, 0, 1)
	a.Record(5, 6, 0, 1)
	a.Record(5, 6, 1, -1) // 5's only value retracted; key must vanish from Drain

	got := a.Drain(1)
	want := map[ident.Name][]ident.Name{1: {2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Drain = %v, want %v", got, want)
	}
}

func TestCursorIteratesKeysInOrder(t *testing.T) {
	a := New()
	a.Record(3, 1, 0, 1)
	a.Record(1, 1, 0, 1)
	a.Record(2, 1, 0, 1)

	var keys []ident.Name
	cur := a.Cursor(0)
	for cur.Next() {
		keys = append(keys, cur.Key())
	}
	want := []ident.Name{1, 2, 3}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("cursor order = %v, want %v", keys, want)
	}
}
