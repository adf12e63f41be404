package feather2d

import (
	"maps"
	"slices"
)

// Overlap transitions of a pair between two calls to Events.Record
const (
	OVERLAP_ENTER EventType = iota
	OVERLAP_STAY
	OVERLAP_EXIT
)

// EventType selects the listeners an Event is delivered to.
type EventType uint8

func (t EventType) String() string {
	switch t {
	case OVERLAP_ENTER:
		return "enter"
	case OVERLAP_STAY:
		return "stay"
	case OVERLAP_EXIT:
		return "exit"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	PairID() int
}

// OverlapEnterEvent is emitted the first time a pair is recorded as intersecting.
type OverlapEnterEvent struct {
	Contact Contact
}

func (e OverlapEnterEvent) Type() EventType { return OVERLAP_ENTER }
func (e OverlapEnterEvent) PairID() int     { return e.Contact.ID }

// OverlapStayEvent is emitted while a pair keeps intersecting.
type OverlapStayEvent struct {
	Contact Contact
}

func (e OverlapStayEvent) Type() EventType { return OVERLAP_STAY }
func (e OverlapStayEvent) PairID() int     { return e.Contact.ID }

// OverlapExitEvent is emitted once a previously intersecting pair stops
// intersecting or is no longer recorded. Contact is the last intersecting one.
type OverlapExitEvent struct {
	Contact Contact
}

func (e OverlapExitEvent) Type() EventType { return OVERLAP_EXIT }
func (e OverlapExitEvent) PairID() int     { return e.Contact.ID }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks intersecting pairs between calls to Record and dispatches the
// transitions to listeners. It is not safe for concurrent use.
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Overlap tracking for Enter/Stay/Exit detection, keyed by Pair.ID
	previousActivePairs map[int]Contact
	currentActivePairs  map[int]Contact
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[int]Contact),
		currentActivePairs:  make(map[int]Contact),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// Record takes the contacts of one narrow-phase run, compares the intersecting
// ones with the previous run and sends the resulting events to the listeners.
// Events are delivered ordered by pair ID, enter and stay events before exits.
func (e *Events) Record(contacts []Contact) {
	e.recordContacts(contacts)
	e.flush()
}

func (e *Events) recordContacts(contacts []Contact) {
	for _, c := range contacts {
		if c.Intersecting {
			e.currentActivePairs[c.ID] = c
		}
	}
}

// processOverlapEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processOverlapEvents() {
	for _, id := range sortedKeys(e.currentActivePairs) {
		contact := e.currentActivePairs[id]
		if _, ok := e.previousActivePairs[id]; ok {
			// Pair was active before and still is, Stay
			e.buffer = append(e.buffer, OverlapStayEvent{Contact: contact})
		} else {
			e.buffer = append(e.buffer, OverlapEnterEvent{Contact: contact})
		}
	}

	for _, id := range sortedKeys(e.previousActivePairs) {
		if _, ok := e.currentActivePairs[id]; !ok {
			e.buffer = append(e.buffer, OverlapExitEvent{Contact: e.previousActivePairs[id]})
		}
	}

	// Swap for next run and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processOverlapEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

func sortedKeys(m map[int]Contact) []int {
	return slices.Sorted(maps.Keys(m))
}
