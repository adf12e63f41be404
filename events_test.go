package feather2d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestContact(id int, intersecting bool) Contact {
	return Contact{
		Pair:         Pair{ID: id},
		Intersecting: intersecting,
	}
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) ids() []int {
	ids := make([]int, 0, len(ec.events))
	for _, e := range ec.events {
		ids = append(ids, e.PairID())
	}
	return ids
}

func subscribeAll(events *Events, capture *eventCapture) {
	events.Subscribe(OVERLAP_ENTER, capture.capture)
	events.Subscribe(OVERLAP_STAY, capture.capture)
	events.Subscribe(OVERLAP_EXIT, capture.capture)
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture1 := &eventCapture{}
	capture2 := &eventCapture{}

	events.Subscribe(OVERLAP_ENTER, capture1.capture)
	events.Subscribe(OVERLAP_ENTER, capture2.capture)
	assert.Len(t, events.listeners[OVERLAP_ENTER], 2)

	events.Record([]Contact{createTestContact(1, true)})

	assert.Len(t, capture1.events, 1)
	assert.Len(t, capture2.events, 1)
}

// =============================================================================
// Enter/Stay/Exit Tests
// =============================================================================

func TestEvents_Lifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	// First run: Enter
	events.Record([]Contact{createTestContact(1, true)})
	require.Len(t, capture.events, 1)
	assert.Equal(t, OVERLAP_ENTER, capture.events[0].Type())
	assert.Equal(t, 1, capture.events[0].PairID())

	// Still intersecting: Stay
	capture.reset()
	events.Record([]Contact{createTestContact(1, true)})
	require.Len(t, capture.events, 1)
	assert.IsType(t, OverlapStayEvent{}, capture.events[0])

	// Separated: Exit
	capture.reset()
	events.Record([]Contact{createTestContact(1, false)})
	require.Len(t, capture.events, 1)
	assert.IsType(t, OverlapExitEvent{}, capture.events[0])

	// Nothing left to report
	capture.reset()
	events.Record([]Contact{createTestContact(1, false)})
	assert.Empty(t, capture.events)
}

func TestEvents_ExitWhenPairDisappears(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(OVERLAP_EXIT, capture.capture)

	contact := createTestContact(4, true)
	contact.Penetration.Depth = 0.25
	contact.Penetration.Normal = mgl64.Vec2{0, 1}
	events.Record([]Contact{contact})
	assert.Empty(t, capture.events)

	// The broad phase no longer reports the pair at all
	events.Record(nil)
	require.Len(t, capture.events, 1)

	exit := capture.events[0].(OverlapExitEvent)
	assert.Equal(t, contact, exit.Contact, "exit carries the last intersecting contact")
}

func TestEvents_OnlyIntersectingPairs(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	events.Record([]Contact{
		createTestContact(1, false),
		createTestContact(2, false),
	})
	assert.Empty(t, capture.events)
}

func TestEvents_Ordering(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	events.Record([]Contact{
		createTestContact(9, true),
		createTestContact(3, true),
		createTestContact(5, true),
	})
	assert.Equal(t, []int{3, 5, 9}, capture.ids())

	capture.reset()
	events.Record([]Contact{
		createTestContact(9, true),
		createTestContact(1, true),
		createTestContact(5, false),
	})
	// Enter/Stay by ID, then exits by ID
	assert.Equal(t, []int{1, 9, 3, 5}, capture.ids())
	assert.Equal(t, []EventType{OVERLAP_ENTER, OVERLAP_STAY, OVERLAP_EXIT, OVERLAP_EXIT}, []EventType{
		capture.events[0].Type(),
		capture.events[1].Type(),
		capture.events[2].Type(),
		capture.events[3].Type(),
	})
}

func TestEvents_WithNarrowPhase(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	a := createBox(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 1})
	near := createBox(mgl64.Vec2{1.5, 0}, mgl64.Vec2{1, 1})
	far := createBox(mgl64.Vec2{2.5, 0}, mgl64.Vec2{1, 1})

	events.Record(CollideAll([]Pair{{ID: 1, A: a, B: near}}, Options{Workers: 1}))
	require.Len(t, capture.events, 1)
	enter := capture.events[0].(OverlapEnterEvent)
	assert.InDelta(t, 0.5, enter.Contact.Penetration.Depth, 1e-9)

	capture.reset()
	events.Record(CollideAll([]Pair{{ID: 1, A: a, B: far}}, Options{Workers: 1}))
	require.Len(t, capture.events, 1)
	assert.Equal(t, OVERLAP_EXIT, capture.events[0].Type())
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "enter", OVERLAP_ENTER.String())
	assert.Equal(t, "stay", OVERLAP_STAY.String())
	assert.Equal(t, "exit", OVERLAP_EXIT.String())
	assert.Equal(t, "unknown", EventType(42).String())
}
