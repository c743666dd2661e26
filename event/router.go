package event

// Emitter accepts events from lane entities
type Emitter interface {
	Emit(ev GameEvent)
}

// Handler processes specific event types
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Emit, at the point of the state transition
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function to a single-type subscription
type HandlerFunc func(ev GameEvent)

// Router dispatches events to registered handlers
//
// Architecture:
//   - Synchronous dispatch, no queue: Emit returns after every handler ran
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Handlers may emit further events; those dispatch depth-first
type Router struct {
	handlers [EventTypeCount][]func(GameEvent)
	emitted  [EventTypeCount]int64
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, et := range h.EventTypes() {
		r.Subscribe(et, h.HandleEvent)
	}
}

// Subscribe adds a callback for a single event type
func (r *Router) Subscribe(et EventType, fn HandlerFunc) {
	if et <= EventNone || et >= EventTypeCount || fn == nil {
		return
	}
	r.handlers[et] = append(r.handlers[et], fn)
}

// Emit dispatches ev to every handler registered for its type
func (r *Router) Emit(ev GameEvent) {
	if ev.Type <= EventNone || ev.Type >= EventTypeCount {
		return
	}
	r.emitted[ev.Type]++
	for _, fn := range r.handlers[ev.Type] {
		fn(ev)
	}
}

// Emitted returns how many events of the type passed through the router
func (r *Router) Emitted(et EventType) int64 {
	if et <= EventNone || et >= EventTypeCount {
		return 0
	}
	return r.emitted[et]
}

// Discard is an Emitter that drops everything
type Discard struct{}

func (Discard) Emit(GameEvent) {}

// Recorder is an Emitter that keeps every event in order
type Recorder struct {
	Events []GameEvent
}

func (rec *Recorder) Emit(ev GameEvent) {
	rec.Events = append(rec.Events, ev)
}

// Count returns how many recorded events have the given type
func (rec *Recorder) Count(et EventType) int {
	n := 0
	for _, ev := range rec.Events {
		if ev.Type == et {
			n++
		}
	}
	return n
}

// Reset drops recorded events
func (rec *Recorder) Reset() {
	rec.Events = rec.Events[:0]
}
