/*

The exported Protocol type.

*/

package stormprot

import (
	"bufio"
	"bytes"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/stormprot/stormprot/build"
)

// Oldest and newest registered base builds. The oldest is used to decode
// replay headers: the header schema is stable enough that any table set can
// parse it, and every supported replay is of the oldest build or newer.
var (
	MinBaseBuild int
	MaxBaseBuild int
)

func init() {
	first := true
	visit := func(k int) {
		if first {
			MinBaseBuild, MaxBaseBuild = k, k
			first = false
			return
		}
		if k < MinBaseBuild {
			MinBaseBuild = k
		}
		if k > MaxBaseBuild {
			MaxBaseBuild = k
		}
	}
	for k := range build.Builds {
		visit(k)
	}
	for k := range build.Duplicates {
		visit(k)
	}
}

// EvtType describes a named event data structure type.
type EvtType struct {
	Id     int    // Id of the event
	Name   string // Name of the event
	typeid int    // Type id of the event data structure
}

// The Protocol type which implements the data structures and their decoding
// from StormReplay files, as defined by the per-build type info tables.
type Protocol struct {
	baseBuild int // Base build

	typeInfos []typeInfo // Type info slice, decoding instructions for all the types

	gameEvtTypes         map[int]EvtType // Game event types mapped from event id
	gameEventidTypeid    int             // The typeid of the NNet.Game.EEventId enum
	messageEvtTypes      map[int]EvtType // Message event types mapped from event id
	messageEventidTypeid int             // The typeid of the NNet.Game.EMessageId enum
	trackerEvtTypes      map[int]EvtType // Tracker event types mapped from event id
	trackerEventidTypeid int             // The typeid of the NNet.Replay.Tracker.EEventId enum

	svaruint32Typeid int // The typeid of NNet.SVarUint32 (the type used to encode gameloop deltas)

	replayUseridTypeid int // The typeid of NNet.Replay.SGameUserId (the type used to encode user ids)

	replayHeaderTypeid   int // The typeid of NNet.Replay.SHeader (the type used to store replay game version and length)
	gameDetailsTypeid    int // The typeid of NNet.Game.SDetails (the type used to store overall replay details)
	replayInitdataTypeid int // The typeid of NNet.Replay.SInitData (the type used to store the initial lobby)
}

// BaseBuild returns the base build this Protocol decodes.
func (p *Protocol) BaseBuild() int {
	return p.baseBuild
}

var (
	// Holds the already parsed Protocols mapped from base build.
	protocols = make(map[int]*Protocol)
	// Mutex protecting access of the protocols map
	protMux = &sync.Mutex{}
)

// GetProtocol returns the Protocol for the specified base build.
// nil return value indicates unknown/unsupported base build.
func GetProtocol(baseBuild int) *Protocol {
	protMux.Lock()
	defer protMux.Unlock()

	return getProtocol(baseBuild)
}

// getProtocol returns the Protocol for the specified base build.
// nil return value indicates unknown/unsupported base build.
// protMux must be locked when this function is called.
func getProtocol(baseBuild int) *Protocol {
	// Check if protocol is already parsed:
	p, ok := protocols[baseBuild]
	if ok {
		// Note that ok only means a value exists for baseBuild but it might be nil
		// in case we didn't find it or failed to parse it in an earlier call.
		return p
	}

	// Not yet parsed, check if an original base build (not duplicate):
	src, ok := build.Builds[baseBuild]
	if ok {
		p = parseProtocol(src, baseBuild)
		protocols[baseBuild] = p
		return p
	}

	// Either a duplicate or an Unknown base build. Check for duplicate:
	origBaseBuild, ok := build.Duplicates[baseBuild]
	if ok {
		// It's a duplicate. Get the original (will load original if needed).
		// origBaseBuild surely exists (build.Duplicates contains valid entries, ensured by test!)
		// but parsing it may (still) fail, so check for nil:
		if op := getProtocol(origBaseBuild); op != nil {
			// Copy / clone protocol with proper base build:
			p = new(Protocol)
			*p = *op
			p.baseBuild = baseBuild
		}
	}
	// (else it's not a duplicate: it's an Unknown base build; p remains nil)

	// Even if p is nil: still store nil value so we'll know this earlier next time
	protocols[baseBuild] = p
	return p
}

// parseProtocol parses a Protocol from its python source.
// nil is returned if parsing error occurs.
func parseProtocol(src string, baseBuild int) (prot *Protocol) {
	// Protect the parsing logic:
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Failed to parse protocol source %d: %v\n", baseBuild, r)
			prot = nil
		}
	}()

	p := Protocol{baseBuild: baseBuild}

	scanner := bufio.NewScanner(strings.NewReader(src))

	var line string

	// Helper function to seek to a line with a given prefix:
	seek := func(prefix string) {
		for scanner.Scan() {
			line = scanner.Text()
			if strings.HasPrefix(line, prefix) {
				return
			}
		}
		panic(fmt.Sprintf(`Couldn't find "%s"`, prefix))
	}

	// Helper function to parse the last integer number from the current line with form: "some_name = int_value"
	parseInt := func() int {
		i := strings.LastIndex(line, "=")
		if i < 0 {
			panic("Can't find '=' in line")
		}
		n, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
		if err != nil {
			panic(err)
		}
		return n
	}

	// Helper function to parse an event types map
	parseEvtTypes := func() map[int]EvtType {
		var err error
		em := make(map[int]EvtType)
		for scanner.Scan() {
			line = scanner.Text()
			if line == "}" {
				break
			}
			e := EvtType{}
			i := strings.IndexByte(line, ':')
			e.Id, err = strconv.Atoi(strings.TrimSpace(line[:i]))
			if err != nil {
				panic(err)
			}
			line = line[i+1:]
			i = strings.IndexByte(line, '(') + 1
			j := strings.IndexByte(line, ',')
			e.typeid, err = strconv.Atoi(strings.TrimSpace(line[i:j]))
			if err != nil {
				panic(err)
			}
			i = strings.IndexByte(line, '\'') + 1
			line = line[i:]
			i = strings.IndexByte(line, '\'')
			e.Name = line[:i]
			em[e.Id] = e
		}
		return em
	}

	// Decode typeinfos
	seek("typeinfos")
	// Use a large local variable
	typeInfos := make([]typeInfo, 0, 256)
	for scanner.Scan() {
		line = scanner.Text()
		if line == "]" {
			break
		}
		typeInfos = append(typeInfos, parseTypeInfo(line))
	}
	// And now copy a trimmed version of this to Protocol (typeInfo is a relatively large struct):
	p.typeInfos = make([]typeInfo, len(typeInfos))
	copy(p.typeInfos, typeInfos)

	// Decode game event types
	seek("game_event_types")
	p.gameEvtTypes = parseEvtTypes()

	seek("game_eventid_typeid")
	p.gameEventidTypeid = parseInt()

	// Decode message event types
	seek("message_event_types")
	p.messageEvtTypes = parseEvtTypes()

	seek("message_eventid_typeid")
	p.messageEventidTypeid = parseInt()

	// Decode tracker event types
	seek("tracker_event_types")
	p.trackerEvtTypes = parseEvtTypes()

	seek("tracker_eventid_typeid")
	p.trackerEventidTypeid = parseInt()

	seek("svaruint32_typeid")
	p.svaruint32Typeid = parseInt()

	seek("replay_userid_typeid")
	p.replayUseridTypeid = parseInt()

	seek("replay_header_typeid")
	p.replayHeaderTypeid = parseInt()

	seek("game_details_typeid")
	p.gameDetailsTypeid = parseInt()

	seek("replay_initdata_typeid")
	p.replayInitdataTypeid = parseInt()

	return &p
}

// DecodeHeader decodes and returns the replay header.
//
// The header is decoded with the oldest registered protocol: the header
// schema is stable across builds, and the decoded header is what tells the
// actual base build to use for the rest of the replay.
func DecodeHeader(contents []byte) (s Struct, err error) {
	p := GetProtocol(MinBaseBuild)
	if p == nil {
		return Struct{}, &ProtocolNotFoundError{BaseBuild: MinBaseBuild}
	}

	defer recoverError(&err)

	if len(contents) < 4 {
		return Struct{}, ErrTruncated
	}
	contents = contents[4:] // 3c 00 00 00 (might be part of the MPQ header and not the user data)

	d := newVersionedDec(contents, p.typeInfos)

	s, ok := d.instance(p.replayHeaderTypeid).(Struct)
	if !ok {
		corrupted("replay header is not a struct")
	}

	return s, nil
}

// DecodeDetails decodes and returns the game details.
func (p *Protocol) DecodeDetails(contents []byte) (s Struct, err error) {
	defer recoverError(&err)

	d := newVersionedDec(contents, p.typeInfos)

	s, ok := d.instance(p.gameDetailsTypeid).(Struct)
	if !ok {
		corrupted("game details is not a struct")
	}

	return s, nil
}

// DecodeInitData decodes and returns the replay init data.
func (p *Protocol) DecodeInitData(contents []byte) (s Struct, err error) {
	defer recoverError(&err)

	d := newBitPackedDec(contents, p.typeInfos)

	s, ok := d.instance(p.replayInitdataTypeid).(Struct)
	if !ok {
		corrupted("replay init data is not a struct")
	}

	return s, nil
}

// DecodeAttributesEvts decodes and returns the attributes events.
//
// The attributes file is not type-directed: it is a fixed layout over a
// little endian buffer, the only place where little endian order is used.
func (p *Protocol) DecodeAttributesEvts(contents []byte) (s Struct, err error) {
	defer recoverError(&err)

	s = NewStruct()

	if len(contents) == 0 {
		return s, nil
	}

	bb := &bitPackedBuff{
		contents:  contents,
		bigEndian: false,
	}

	s.Put("source", bb.readBits(8))
	s.Put("mapNamespace", bb.readBits(32))

	bb.readBits(32) // Attributes count; read but not relied upon

	scopes := NewStruct()
	for !bb.EOF() {
		attr := NewStruct()
		attr.Put("namespace", bb.readBits(32))
		attrid := bb.readBits(32)
		attr.Put("attrid", attrid)
		attrscope := bb.readBits(8)

		// The 4-byte value is stored reversed, padded with zero bytes.
		vb := bb.readAligned(4)
		vb[0], vb[3] = vb[3], vb[0]
		vb[1], vb[2] = vb[2], vb[1]
		attr.Put("value", string(bytes.Trim(vb, "\x00")))

		sattrscope := strconv.FormatInt(attrscope, 10)
		sattrid := strconv.FormatInt(attrid, 10)

		scope, ok := scopes.Get(sattrscope).(Struct)
		if !ok {
			scope = NewStruct()
		}
		list, _ := scope.Get(sattrid).([]interface{})
		scope.Put(sattrid, append(list, attr))
		// Re-store: Struct is a value, a field added to the copy is not
		// visible in the stored one otherwise.
		scopes.Put(sattrscope, scope)
	}
	s.Put("scopes", scopes)

	return s, nil
}

// GameEvtSeq returns the lazy sequence of game events.
func (p *Protocol) GameEvtSeq(contents []byte) *EvtSeq {
	return p.evtSeq(newBitPackedDec(contents, p.typeInfos), p.gameEventidTypeid, p.gameEvtTypes, true)
}

// MessageEvtSeq returns the lazy sequence of message events.
func (p *Protocol) MessageEvtSeq(contents []byte) *EvtSeq {
	return p.evtSeq(newBitPackedDec(contents, p.typeInfos), p.messageEventidTypeid, p.messageEvtTypes, true)
}

// TrackerEvtSeq returns the lazy sequence of tracker events.
// Tracker events carry no user id.
func (p *Protocol) TrackerEvtSeq(contents []byte) *EvtSeq {
	return p.evtSeq(newVersionedDec(contents, p.typeInfos), p.trackerEventidTypeid, p.trackerEvtTypes, false)
}

// evtSeq returns a lazy event sequence over the specified decoder.
func (p *Protocol) evtSeq(d decoder, evtidTypeid int, etypes map[int]EvtType, decodeUserid bool) *EvtSeq {
	return &EvtSeq{
		d:            d,
		deltaTypeid:  p.svaruint32Typeid,
		useridTypeid: p.replayUseridTypeid,
		evtidTypeid:  evtidTypeid,
		evtTypes:     etypes,
		decodeUserid: decodeUserid,
	}
}

// DecodeGameEvts decodes and returns the game events.
// In case of a decoding error, successfully decoded events are still returned along with the error.
func (p *Protocol) DecodeGameEvts(contents []byte) ([]Event, error) {
	return collectEvts(p.GameEvtSeq(contents))
}

// DecodeMessageEvts decodes and returns the message events.
// In case of a decoding error, successfully decoded events are still returned along with the error.
func (p *Protocol) DecodeMessageEvts(contents []byte) ([]Event, error) {
	return collectEvts(p.MessageEvtSeq(contents))
}

// DecodeTrackerEvts decodes and returns the tracker events.
// In case of a decoding error, successfully decoded events are still returned along with the error.
func (p *Protocol) DecodeTrackerEvts(contents []byte) ([]Event, error) {
	return collectEvts(p.TrackerEvtSeq(contents))
}

// collectEvts drains an event sequence into a slice.
func collectEvts(seq *EvtSeq) ([]Event, error) {
	events := make([]Event, 0, 256) // This is most likely overestimation for message events but underestimation for all other event types
	for seq.Next() {
		events = append(events, *seq.Event())
	}
	return events, seq.Err()
}
