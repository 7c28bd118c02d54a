/*

Type describing the tracker events.

*/

package rep

import "github.com/stormprot/stormprot"

// Tracker event IDs.
const (
	// TrackerEvtIDPlayerStats is the ID of the Player Stats tracker event
	TrackerEvtIDPlayerStats = 0
	// TrackerEvtIDUnitBorn is the ID of the Unit Born tracker event
	TrackerEvtIDUnitBorn = 1
	// TrackerEvtIDUnitDied is the ID of the Unit Died tracker event
	TrackerEvtIDUnitDied = 2
)

// TrackerEvts contains tracker events and data derived from them.
type TrackerEvts struct {
	// Evts contains the tracker events
	Evts []stormprot.Event

	// unitNames maps unit tags to unit type names, built from Unit Born events
	unitNames map[int64]string
}

// newTrackerEvts creates a new TrackerEvts from the decoded events.
func newTrackerEvts(evts []stormprot.Event) TrackerEvts {
	t := TrackerEvts{Evts: evts, unitNames: make(map[int64]string)}

	for i := range evts {
		e := &evts[i]
		if e.Id != TrackerEvtIDUnitBorn {
			continue
		}
		tag := stormprot.UnitTag(e.Int("m_unitTagIndex"), e.Int("m_unitTagRecycle"))
		t.unitNames[tag] = e.Stringv("m_unitTypeName")
	}

	return t
}

// UnitName returns the type name of the unit with the given tag,
// or the empty string if no Unit Born event was seen for the tag.
func (t *TrackerEvts) UnitName(tag int64) string {
	return t.unitNames[tag]
}

// UnitNameByIndex returns the type name of the unit with the given
// index and recycle parts.
func (t *TrackerEvts) UnitNameByIndex(unitTagIndex, unitTagRecycle int64) string {
	return t.UnitName(stormprot.UnitTag(unitTagIndex, unitTagRecycle))
}
