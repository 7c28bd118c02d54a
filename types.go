/*

Types describing decoding instructions for protocol types,
and the dynamic value tree the decoders produce.

*/

package stormprot

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Protocol type selector
type spType int

// Protocol types
const (
	spInt      spType = iota // An integer number
	spStruct                 // A structure (list of fields)
	spChoice                 // A choice of multiple types (one of multiple)
	spArr                    // List of elements of the same type
	spBitArr                 // List of bits (packed into a byte array)
	spBlob                   // A byte array
	spOptional               // Optionally a value (of a specified type)
	spBool                   // A bool value
	spFourCC                 // 4 bytes data, usually interpreted as string
	spNull                   // Exactly as its name says: nothing
)

// Precached map from type names to spType value (for faster parsing).
// First 2 characters (excluding the underscore '_') are unique, so just use that:
var nameSpTypes = map[string]spType{"in": spInt, "st": spStruct, "ch": spChoice, "ar": spArr,
	"bi": spBitArr, "bl": spBlob, "op": spOptional, "bo": spBool, "fo": spFourCC, "nu": spNull}

// Describes a field in structures.
// Fields used for structures (spStruct) have/use the tag attribute as the wire field tag,
// fields used for choices (spChoice) use the tag as the wire choice tag.
type field struct {
	name   string // Name of the field
	typeid int    // Type id (index) of the type info of the field's value
	tag    int    // Wire tag of the field; -1 marks fields that have no wire tag

	isNameParent bool // Tells if field name equals to "__parent" (checked many times, the result is constant)
}

// Decoding info for a specific type.
type typeInfo struct {
	spType spType // Type selector; specifies how to read the value and what further fields are valid/filled

	// Optional parameters for decoding, filled values depend on spType

	// Bounds for int (and also for choice and array and bitarray and blob)
	offset int64 // Offset to add to the read value
	bits   int   // Number of bits to read

	// For struct, and also for choice
	fields []field // List of fields (in case of struct), or cases (in case of choice)

	// For array, also used for optional
	typeid int // Type id (index) of the elements of the array / of the optional value
}

// fieldByTag returns the field (or choice case) having the specified wire tag,
// or nil if the type has no such field.
func (ti *typeInfo) fieldByTag(tag int) *field {
	for i := range ti.fields {
		if ti.fields[i].tag == tag {
			return &ti.fields[i]
		}
	}
	return nil
}

// parseTypeInfo parses a typeInfo from a python string representation.
// Panics if input is in invalid format.
func parseTypeInfo(s string) typeInfo {
	var err error

	// Decode type name, example:
	// ('_int',[(0,7)]),  #0
	s = s[strings.IndexByte(s, '\'')+2:] // All start with an underscore '_', cut that also

	// Map keys are the first 2 characters of the names
	ti := typeInfo{spType: nameSpTypes[s[:2]]}

	if ti.spType == spOptional {
		// In case of Optional no parenthesis follows, only skip 1 character, 2nd is part of the number
		s = s[strings.IndexByte(s, '[')+1:]
	} else {
		s = s[strings.IndexByte(s, '[')+2:]
	}

	// Helper function to read intbounds specified in the form of "(0,7)" (positioned after the parenthesis)
	// Returns the last index (closing parenthesis)
	readBounds := func() int {
		// Parameters: offset and bits which will provide an integer value
		i := strings.IndexByte(s, ',')
		j := strings.IndexByte(s, ')')
		if ti.bits, err = strconv.Atoi(s[i+1 : j]); err != nil {
			panic(err)
		}
		if ti.offset, err = strconv.ParseInt(s[:i], 10, 64); err != nil {
			panic(err)
		}
		if ti.bits > 64 || ti.bits < 0 {
			panic(fmt.Sprintf("invalid bit width: %d", ti.bits))
		}
		if ti.bits == 64 && ti.offset != 0 {
			panic("64-bit field must have zero offset")
		}
		return j
	}

	switch ti.spType {
	case spInt: // ('_int',[(0,7)]),  #0
		// Parameters: offset and bits which will provide the integer value
		readBounds()
	case spStruct: // ('_struct',[[('m_flags',8,0),('m_major',8,1)]]),  #13
		// Parameters: list of fields
		fields := make([]field, 0, 8)
		for {
			i := strings.IndexByte(s, '\'')
			if i < 0 {
				break // No more fields
			}
			s = s[i+1:]
			i = strings.IndexByte(s, '\'')
			f := field{name: s[:i]}
			f.isNameParent = f.name == "__parent"
			s = s[i+2:]
			i = strings.IndexByte(s, ',')
			j := strings.IndexByte(s, ')')
			if f.typeid, err = strconv.Atoi(s[:i]); err != nil {
				panic(err)
			}
			if f.tag, err = strconv.Atoi(s[i+1 : j]); err != nil {
				panic(err)
			}
			fields = append(fields, f)
		}
		// Copy a trimmed version of this to type info:
		ti.fields = make([]field, len(fields))
		copy(ti.fields, fields)
	case spChoice: // ('_choice',[(0,2),{0:('m_uint6',3),1:('m_uint14',4)}]),  #7
		// Parameters: offset and bits which will provide the tag integer value to choose
		// from the following case list
		i := readBounds()
		s = s[i+1:]
		fields := make([]field, 0, 8)
		for {
			if s[1] == '}' {
				break // No more cases
			}
			s = s[2:]
			i := strings.IndexByte(s, ':')
			f := field{}
			if f.tag, err = strconv.Atoi(s[:i]); err != nil {
				panic(err)
			}
			s = s[strings.IndexByte(s, '\'')+1:]
			i = strings.IndexByte(s, '\'')
			f.name = s[:i]
			s = s[i+2:]
			i = strings.IndexByte(s, ')')
			if f.typeid, err = strconv.Atoi(s[:i]); err != nil {
				panic(err)
			}
			s = s[i:]
			fields = append(fields, f)
		}
		// Copy a trimmed version of this to type info:
		ti.fields = make([]field, len(fields))
		copy(ti.fields, fields)
	case spArr: // ('_array',[(0,5),23]),  #24
		// Parameters: offset+bits which will provide the array length, and a typeid (element type)
		s = s[readBounds()+2:]
		j := strings.IndexByte(s, ']')
		if ti.typeid, err = strconv.Atoi(s[:j]); err != nil {
			panic(err)
		}
	case spBitArr: // ('_bitarray',[(0,6)]),  #52
		// Parameters: offset and bits which will provide the number of bits
		readBounds()
	case spBlob: // ('_blob',[(0,8)]),  #11
		// Parameters: offset and bits which will provide the array length (number of bytes)
		readBounds()
	case spOptional: // ('_optional',[14]),  #15
		// Parameters: typeid (type of the value that optionally follows)
		j := strings.IndexByte(s, ']')
		if ti.typeid, err = strconv.Atoi(s[:j]); err != nil {
			panic(err)
		}
	case spBool: // ('_bool',[]),  #13
		// We're done, nothing to do (no parameters)
	case spFourCC: // ('_fourcc',[]),  #19
		// We're done, nothing to do (no parameters)
	case spNull: // ('_null',[]),  #91
		// We're done, nothing to do (no parameters)
	}

	return ti
}

// Struct represents a decoded struct.
// It is a dynamic struct modelled with a general ordered map with helper methods
// to access its content. Field iteration and JSON output preserve the order
// fields were decoded in.
//
// A Struct is mutable while it is being built (by the decoders), and must be
// treated as read-only once it is returned to the caller.
//
// Tip: the String method and the encoding/json package nicely format Struct values:
//
//	fmt.Printf("Full Struct:\n%v\n", someStruct)
type Struct struct {
	keys   []string
	values map[string]interface{}
}

// NewStruct returns a new, empty Struct.
func NewStruct() Struct {
	return Struct{values: make(map[string]interface{})}
}

// Len returns the number of fields.
func (s *Struct) Len() int {
	return len(s.keys)
}

// Keys returns the field names in insertion order.
// The returned slice must not be modified.
func (s *Struct) Keys() []string {
	return s.keys
}

// Put sets the value of the named field.
// A new field is appended, an existing field keeps its position and gets the new value.
func (s *Struct) Put(name string, v interface{}) {
	if s.values == nil {
		s.values = make(map[string]interface{})
	}
	if _, ok := s.values[name]; !ok {
		s.keys = append(s.keys, name)
	}
	s.values[name] = v
}

// Get returns the value of the named field, or nil if there is no such field.
func (s *Struct) Get(name string) interface{} {
	return s.values[name]
}

// Has tells if the Struct has a field with the specified name.
func (s *Struct) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// merge copies all fields of s2 into s, preserving s2's field order.
// Fields already present in s keep their position and take s2's value.
func (s *Struct) merge(s2 Struct) {
	for _, k := range s2.keys {
		s.Put(k, s2.values[k])
	}
}

// Value returns the value specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Value(path ...string) interface{} {
	if len(path) == 0 {
		return nil
	}

	ss, ok := *s, false

	last := len(path) - 1
	for i := 0; i < last; i++ {
		if ss, ok = ss.values[path[i]].(Struct); !ok {
			return nil
		}
	}

	return ss.values[path[last]]
}

// Structv returns the (sub) Struct specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Structv(path ...string) (v Struct) {
	v, _ = s.Value(path...).(Struct)
	return
}

// Int returns the integer specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Int(path ...string) (v int64) {
	v, _ = s.Value(path...).(int64)
	return
}

// Bool returns the bool specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Bool(path ...string) (v bool) {
	v, _ = s.Value(path...).(bool)
	return
}

// Stringv returns the string specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Stringv(path ...string) (v string) {
	v, _ = s.Value(path...).(string)
	return
}

// Array returns the array (of empty interfaces) specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) Array(path ...string) (v []interface{}) {
	v, _ = s.Value(path...).([]interface{})
	return
}

// BitArr returns the bit array specified by the path.
// zero value is returned if path is invalid.
func (s *Struct) BitArr(path ...string) (v BitArr) {
	v, _ = s.Value(path...).(BitArr)
	return
}

// MarshalJSON produces the JSON representation of the Struct with fields
// in insertion order.
func (s Struct) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kd, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kd)
		buf.WriteByte(':')
		vd, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vd)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns the indented JSON string representation of the Struct.
func (s Struct) String() string {
	b, _ := json.MarshalIndent(s, "", "  ")
	return string(b)
}

// Event is a decoded event record with the synthetic fields inserted by the
// event stream ("_event", "_eventid", "_gameloop", "_bits" and - for game and
// message events - "_userid").
type Event struct {
	Struct
	*EvtType // Pointer only to avoid copying
}

// Loop returns the game loop (time) of the event.
func (e *Event) Loop() int64 {
	return e.Int("_gameloop")
}

// UserID returns the id of the user that issued the event.
// Zero value is returned for events that carry no user id (e.g. tracker events).
func (e *Event) UserID() int64 {
	return e.Int("_userid", "m_userId")
}

// Bits returns the wire footprint of the event in bits, framing included.
func (e *Event) Bits() int64 {
	return e.Int("_bits")
}

// Bit array which stores the bits in a byte slice.
type BitArr struct {
	Count int    // Bits count
	Data  []byte // Data holding the bits
}

// Bit masks having exactly 1 one bit at the position specified by the index (zero-based).
var singleBitMasks = [...]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

// Bit tells if the bit at the specified position (zero-based) is 1.
func (b *BitArr) Bit(n int) bool {
	return b.Data[n>>3]&singleBitMasks[n&0x07] != 0
}

// Cached array which tells the number of 1 bits in the number specified by the index.
var ones [256]int

func init() {
	// Initialize / compute the ones array.
	for i := range ones {
		c := 0
		for j := i; j > 0; j >>= 1 {
			if j&0x01 != 0 {
				c++
			}
		}
		ones[i] = c
	}
}

// Ones returns the number of 1 bits in the bit array.
func (b *BitArr) Ones() (c int) {
	for _, d := range b.Data {
		c += ones[d]
	}
	return
}

// String returns the string representation of the bit array in hexadecimal form.
// Using value receiver so printing a BitArr value will call this method.
func (b BitArr) String() string {
	return fmt.Sprintf("0x%s (count=%d)", hex.EncodeToString(b.Data), b.Count)
}

// MarshalJSON produces a custom JSON string for a more informative and more compact representation of the bitarray.
// The essence is that the Data slice is presented in hex format (instead of the default Base64 encoding).
func (b BitArr) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"Count":%d,"Data": "0x%s"}`, b.Count, hex.EncodeToString(b.Data))), nil
}
