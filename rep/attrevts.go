/*

Type describing the attributes events.

*/

package rep

import (
	"strconv"

	"github.com/stormprot/stormprot"
)

// AttrEvts contains game attributes.
type AttrEvts struct {
	stormprot.Struct

	// Scopes
	scopes stormprot.Struct
}

// newAttrEvts creates a new attributes events from the specified Struct.
func newAttrEvts(s stormprot.Struct) AttrEvts {
	return AttrEvts{
		Struct: s,
		scopes: s.Structv("scopes"),
	}
}

// Source returns the source.
func (a *AttrEvts) Source() int64 {
	return a.Int("source")
}

// MapNamespace returns the map namespace.
func (a *AttrEvts) MapNamespace() int64 {
	return a.Int("mapNamespace")
}

// Attrs returns all entries recorded for the given scope and attribute id,
// in wire order.
func (a *AttrEvts) Attrs(scope, attrid int64) []stormprot.Struct {
	scopev := a.scopes.Structv(strconv.FormatInt(scope, 10))
	entries, _ := scopev.Get(strconv.FormatInt(attrid, 10)).([]interface{})
	if entries == nil {
		return nil
	}
	attrs := make([]stormprot.Struct, 0, len(entries))
	for _, e := range entries {
		if s, ok := e.(stormprot.Struct); ok {
			attrs = append(attrs, s)
		}
	}
	return attrs
}

// AttrValue returns the value of the first entry recorded for the given scope
// and attribute id, or the empty string.
func (a *AttrEvts) AttrValue(scope, attrid int64) string {
	attrs := a.Attrs(scope, attrid)
	if len(attrs) == 0 {
		return ""
	}
	return attrs[0].Stringv("value")
}
