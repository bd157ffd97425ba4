// SPDX-License-Identifier: EPL-2.0

package region

import (
	"math"
	"testing"
)

func TestCreate_ClampsToDuration(t *testing.T) {
	t.Parallel()

	m, err := NewModel(10.0)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}

	r, err := m.Create(-1.0, 15.0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if r.Start != 0 {
		t.Errorf("Create() start = %v, want 0", r.Start)
	}
	if r.End != 10.0 {
		t.Errorf("Create() end = %v, want 10", r.End)
	}
}

func TestCreate_RejectsEmptySpan(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)

	_, err := m.Create(5.0, 5.0)
	if err != ErrInvalidRegion {
		t.Errorf("Create(5, 5) error = %v, want ErrInvalidRegion", err)
	}

	_, err = m.Create(6.0, 4.0)
	if err != ErrInvalidRegion {
		t.Errorf("Create(6, 4) error = %v, want ErrInvalidRegion", err)
	}

	if _, ok := m.Active(); ok {
		t.Error("Active() reports a region after rejected Create")
	}
}

func TestCreate_ReplacesPreviousRegion(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)

	var seen []*Region
	m.Subscribe(func(r *Region) {
		seen = append(seen, r)
	})

	if _, err := m.Create(1.0, 3.0); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := m.Create(4.0, 8.0); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	r, ok := m.Active()
	if !ok {
		t.Fatal("Active() reports no region")
	}
	if r.Start != 4.0 || r.End != 8.0 {
		t.Errorf("Active() = [%v, %v], want [4, 8]", r.Start, r.End)
	}

	// Replacement is atomic: each notification carries exactly one region.
	if len(seen) != 2 {
		t.Fatalf("subscriber called %d times, want 2", len(seen))
	}
	for i, r := range seen {
		if r == nil {
			t.Errorf("notification %d = nil, want region", i)
		}
	}
}

func TestUpdate_RejectIsNoOp(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)
	before, _ := m.Create(2.0, 5.0)

	after, err := m.Update(6.0, 5.0)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if after != before {
		t.Errorf("Update() = %+v, want previous region %+v", after, before)
	}

	active, _ := m.Active()
	if active != before {
		t.Errorf("Active() = %+v, want %+v", active, before)
	}
}

func TestUpdate_PartialEdges(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)
	m.Create(2.0, 5.0)

	r, err := m.SetStart(1.0)
	if err != nil {
		t.Fatalf("SetStart() error = %v", err)
	}
	if r.Start != 1.0 || r.End != 5.0 {
		t.Errorf("SetStart(1) = [%v, %v], want [1, 5]", r.Start, r.End)
	}

	r, err = m.SetEnd(7.5)
	if err != nil {
		t.Fatalf("SetEnd() error = %v", err)
	}
	if r.Start != 1.0 || r.End != 7.5 {
		t.Errorf("SetEnd(7.5) = [%v, %v], want [1, 7.5]", r.Start, r.End)
	}
}

func TestUpdate_NoActiveRegion(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)

	_, err := m.Update(1.0, 2.0)
	if err != ErrNoRegion {
		t.Errorf("Update() error = %v, want ErrNoRegion", err)
	}
}

func TestClear_NotifiesNil(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(10.0)
	m.Create(2.0, 5.0)

	var got *Region = &Region{}
	m.Subscribe(func(r *Region) { got = r })

	m.Clear()

	if got != nil {
		t.Errorf("subscriber got %+v, want nil", got)
	}
	if _, ok := m.Active(); ok {
		t.Error("Active() reports a region after Clear")
	}

	// Clearing twice stays silent.
	called := false
	m.Subscribe(func(*Region) { called = true })
	m.Clear()
	if called {
		t.Error("Clear() on empty model notified subscribers")
	}
}

func TestSetFromCursor_CreatesDefaultSpan(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(60.0)

	r, err := m.SetFromCursor(10.0, EdgeStart)
	if err != nil {
		t.Fatalf("SetFromCursor() error = %v", err)
	}
	if r.Start != 10.0 || r.End != 10.0+DefaultSpan {
		t.Errorf("SetFromCursor(start) = [%v, %v], want [10, 15]", r.Start, r.End)
	}

	m.Clear()

	r, err = m.SetFromCursor(10.0, EdgeEnd)
	if err != nil {
		t.Fatalf("SetFromCursor() error = %v", err)
	}
	if r.Start != 10.0-DefaultSpan || r.End != 10.0 {
		t.Errorf("SetFromCursor(end) = [%v, %v], want [5, 10]", r.Start, r.End)
	}
}

func TestSetFromCursor_ClampsNearAssetEdges(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(60.0)

	// Anchoring the end near zero clamps the start to the origin.
	r, err := m.SetFromCursor(2.0, EdgeEnd)
	if err != nil {
		t.Fatalf("SetFromCursor() error = %v", err)
	}
	if r.Start != 0 || r.End != 2.0 {
		t.Errorf("SetFromCursor(2, end) = [%v, %v], want [0, 2]", r.Start, r.End)
	}
}

func TestSetFromCursor_EdgeCannotCrossOpposite(t *testing.T) {
	t.Parallel()

	m, _ := NewModel(60.0)
	m.Create(10.0, 20.0)

	// Dragging the start past the end pins it just short of the end.
	r, err := m.SetFromCursor(25.0, EdgeStart)
	if err != nil {
		t.Fatalf("SetFromCursor() error = %v", err)
	}
	if r.Start >= r.End {
		t.Errorf("SetFromCursor() start %v crossed end %v", r.Start, r.End)
	}
	if math.Abs(r.End-20.0) > 1e-9 {
		t.Errorf("SetFromCursor() moved the opposite edge to %v", r.End)
	}

	// Same for the end edge.
	r, err = m.SetFromCursor(5.0, EdgeEnd)
	if err != nil {
		t.Fatalf("SetFromCursor() error = %v", err)
	}
	if r.End <= r.Start {
		t.Errorf("SetFromCursor() end %v crossed start %v", r.End, r.Start)
	}
}

func TestNewModel_NegativeDuration(t *testing.T) {
	t.Parallel()

	if _, err := NewModel(-1.0); err != ErrInvalidDuration {
		t.Errorf("NewModel(-1) error = %v, want ErrInvalidDuration", err)
	}
}

func TestRegion_Contains(t *testing.T) {
	t.Parallel()

	r := Region{Start: 2.0, End: 5.0}

	if !r.Contains(2.0) {
		t.Error("Contains(2) = false, want true")
	}
	if r.Contains(5.0) {
		t.Error("Contains(5) = true, want false")
	}
	if r.Contains(1.9) {
		t.Error("Contains(1.9) = true, want false")
	}
	if r.Span() != 3.0 {
		t.Errorf("Span() = %v, want 3", r.Span())
	}
}
