/*

The Rep type that models a replay (and everything in it).

*/

package rep

import (
	"errors"
	"io"

	"github.com/icza/mpq"
	"github.com/stormprot/stormprot"
)

// ErrInvalidRepFile means invalid replay file.
var ErrInvalidRepFile = errors.New("invalid StormReplay file")

// Names of the inner files of the replay archive.
const (
	fileDetails     = "replay.details"
	fileInitData    = "replay.initData"
	fileAttrEvts    = "replay.attributes.events"
	fileGameEvts    = "replay.game.events"
	fileMessageEvts = "replay.message.events"
	fileTrackerEvts = "replay.tracker.events"
)

// Rep describes a replay.
type Rep struct {
	m *mpq.MPQ // MPQ parser for reading the file

	protocol *stormprot.Protocol // Protocol to decode the replay

	Header   Header   // Replay header (replay game version and length)
	Details  Details  // Game details (overall replay details)
	InitData InitData // Replay init data (the initial lobby)
	AttrEvts AttrEvts // Attributes events

	GameEvts    []stormprot.Event // Game events
	MessageEvts []stormprot.Event // Message events
	TrackerEvts TrackerEvts       // Tracker events

	GameEvtsErr    error // Error encountered while decoding game events (decoded events are still retained)
	MessageEvtsErr error // Error encountered while decoding message events (decoded events are still retained)
	TrackerEvtsErr error // Error encountered while decoding tracker events (decoded events are still retained)
}

// NewFromFile returns a new Rep constructed from a file.
// All types of events are decoded from the replay.
// The returned Rep must be closed with the Close method!
//
// Errors from the MPQ layer are propagated unchanged. A
// *stormprot.ProtocolNotFoundError is returned if the replay's base build is
// not supported, and a decoding error (stormprot.ErrTruncated or
// *stormprot.CorruptedError) if an always-decoded section is invalid.
func NewFromFile(name string) (*Rep, error) {
	return NewFromFileEvts(name, true, true, true)
}

// NewFromFileEvts returns a new Rep constructed from a file, only the specified types of events decoded.
// The game, message and tracker params tell if game events, message events and tracker events are to be decoded.
// Replay header, init data, details and attributes events are always decoded.
// The returned Rep must be closed with the Close method!
func NewFromFileEvts(name string, game, message, tracker bool) (*Rep, error) {
	m, err := mpq.NewFromFile(name)
	if err != nil {
		return nil, err
	}
	return newRep(m, game, message, tracker)
}

// New returns a new Rep using the specified io.ReadSeeker as the StormReplay file source.
// All types of events are decoded from the replay.
// The returned Rep must be closed with the Close method!
func New(input io.ReadSeeker) (*Rep, error) {
	return NewEvts(input, true, true, true)
}

// NewEvts returns a new Rep using the specified io.ReadSeeker as the StormReplay file source,
// only the specified types of events decoded.
// The game, message and tracker params tell if game events, message events and tracker events are to be decoded.
// Replay header, init data, details and attributes events are always decoded.
// The returned Rep must be closed with the Close method!
func NewEvts(input io.ReadSeeker, game, message, tracker bool) (*Rep, error) {
	m, err := mpq.New(input)
	if err != nil {
		return nil, err
	}
	return newRep(m, game, message, tracker)
}

// newRep returns a new Rep constructed using the specified mpq.MPQ handler of the StormReplay file,
// only the specified types of events decoded.
func newRep(m *mpq.MPQ, game, message, tracker bool) (parsedRep *Rep, errRes error) {
	closeMPQ := true
	defer func() {
		// If returning due to an error, MPQ must be closed!
		if closeMPQ {
			m.Close()
		}
	}()

	rep := Rep{m: m}

	userData := m.UserData()
	if len(userData) == 0 {
		return nil, ErrInvalidRepFile
	}

	// It doesn't matter which protocol decodes the header: the base build
	// found in it selects the protocol for everything else.
	hs, err := stormprot.DecodeHeader(userData)
	if err != nil {
		return nil, err
	}
	rep.Header = Header{Struct: hs}

	bb := int(rep.Header.BaseBuild())
	p := stormprot.GetProtocol(bb)
	if p == nil {
		return nil, &stormprot.ProtocolNotFoundError{BaseBuild: bb}
	}
	rep.protocol = p

	data, err := m.FileByName(fileDetails)
	if err != nil {
		return nil, err
	}
	ds, err := p.DecodeDetails(data)
	if err != nil {
		return nil, err
	}
	rep.Details = Details{Struct: ds}

	data, err = m.FileByName(fileInitData)
	if err != nil {
		return nil, err
	}
	is, err := p.DecodeInitData(data)
	if err != nil {
		return nil, err
	}
	rep.InitData = newInitData(is)

	data, err = m.FileByName(fileAttrEvts)
	if err != nil {
		return nil, err
	}
	as, err := p.DecodeAttributesEvts(data)
	if err != nil {
		return nil, err
	}
	rep.AttrEvts = newAttrEvts(as)

	if game {
		data, err = m.FileByName(fileGameEvts)
		if err != nil {
			return nil, err
		}
		rep.GameEvts, rep.GameEvtsErr = p.DecodeGameEvts(data)
	}

	if message {
		data, err = m.FileByName(fileMessageEvts)
		if err != nil {
			return nil, err
		}
		rep.MessageEvts, rep.MessageEvtsErr = p.DecodeMessageEvts(data)
	}

	if tracker {
		data, err = m.FileByName(fileTrackerEvts)
		if err != nil {
			return nil, err
		}
		var evts []stormprot.Event
		evts, rep.TrackerEvtsErr = p.DecodeTrackerEvts(data)
		rep.TrackerEvts = newTrackerEvts(evts)
	}

	// Everything went well, Rep is about to be returned, do not close MPQ
	// (it will be the caller's responsibility, done via Rep.Close()).
	closeMPQ = false

	return &rep, nil
}

// BaseBuild returns the base build of the replay.
func (r *Rep) BaseBuild() int {
	return r.protocol.BaseBuild()
}

// Close closes the Rep and its resources.
func (r *Rep) Close() error {
	return r.m.Close()
}
