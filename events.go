/*

The event stream: a uniform (gameloop delta, optional user id, event id, event body)
framing layered over either decoder.

*/

package stormprot

// decoder defines the most basic methods a decoder must support.
type decoder interface {
	EOF() bool
	byteAlign()
	usedBits() int64
	instance(typeid int) interface{}
}

// EvtSeq is a lazy, single-pass sequence of events decoded from an event
// stream. It holds exclusive access to its decoder (and so to the underlying
// buffer) for its entire lifetime: interleaving other decodes with an
// unfinished sequence leaves the buffer at an unspecified position.
//
// Usage follows the scanner idiom:
//
//	seq := p.GameEvtSeq(contents)
//	for seq.Next() {
//		evt := seq.Event()
//		...
//	}
//	if err := seq.Err(); err != nil {
//		...
//	}
type EvtSeq struct {
	d decoder // Data source

	deltaTypeid  int             // Typeid of the gameloop delta (svaruint32) prefix
	useridTypeid int             // Typeid of the user id value
	evtidTypeid  int             // Typeid of the event id value
	evtTypes     map[int]EvtType // Event id to event type mapping
	decodeUserid bool            // Tells if events are prefixed with a user id

	loop int64  // Running gameloop
	evt  *Event // Last decoded event
	err  error  // First error encountered
	done bool   // Tells if the sequence is exhausted
}

// Next advances the sequence to the next event. It returns false when the
// stream is exhausted or a decoding error occurred, in which case Err tells which.
func (s *EvtSeq) Next() bool {
	if s.done || s.err != nil {
		return false
	}

	if s.d.EOF() {
		s.done = true
		return false
	}

	s.evt, s.err = s.next()
	return s.err == nil
}

// Event returns the last event decoded by Next.
func (s *EvtSeq) Event() *Event {
	return s.evt
}

// Err returns the first error encountered while decoding the sequence, or nil.
func (s *EvtSeq) Err() error {
	return s.err
}

// Loop returns the current value of the running gameloop counter.
func (s *EvtSeq) Loop() int64 {
	return s.loop
}

// next decodes one event with its framing.
func (s *EvtSeq) next() (evt *Event, err error) {
	defer recoverError(&err)

	d := s.d // Local var for efficiency

	startBits := d.usedBits()

	// The gameloop delta precedes each event:
	delta, ok := d.instance(s.deltaTypeid).(Struct)
	if !ok {
		corrupted("gameloop delta is not a choice at bit %d", d.usedBits())
	}
	s.loop += svaruint32Value(delta)

	// The user id precedes game and message events:
	var userid interface{}
	if s.decodeUserid {
		userid = d.instance(s.useridTypeid)
	}

	evtid, ok := d.instance(s.evtidTypeid).(int64)
	if !ok {
		corrupted("event id is not an integer at bit %d", d.usedBits())
	}
	et, ok := s.evtTypes[int(evtid)]
	if !ok {
		corrupted("unknown event id %d at bit %d", evtid, d.usedBits())
	}

	// Decode the event data structure:
	body, ok := d.instance(et.typeid).(Struct)
	if !ok {
		corrupted("event %d body is not a struct at bit %d", evtid, d.usedBits())
	}

	body.Put("_event", et.Name)
	body.Put("_eventid", evtid)
	body.Put("_gameloop", s.loop)
	if s.decodeUserid {
		body.Put("_userid", userid)
	}

	// The next event is byte-aligned:
	d.byteAlign()

	body.Put("_bits", d.usedBits()-startBits)

	return &Event{Struct: body, EvtType: &et}, nil
}

// svaruint32Value returns the numeric payload of a decoded svaruint32 instance
// (a choice whose every case wraps an integer).
func svaruint32Value(s Struct) int64 {
	for _, k := range s.Keys() {
		if v, ok := s.Get(k).(int64); ok {
			return v
		}
	}
	return 0
}
