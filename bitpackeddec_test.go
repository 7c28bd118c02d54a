package stormprot

import (
	"bytes"
	"errors"
	"testing"
)

// testTypeInfos parses a type info table from python source lines.
func testTypeInfos(t *testing.T, lines ...string) []typeInfo {
	t.Helper()
	tis := make([]typeInfo, len(lines))
	for i, line := range lines {
		tis[i] = parseTypeInfo(line)
	}
	return tis
}

// decTypeInfos is the table used by the decoder tests.
func decTypeInfos(t *testing.T) []typeInfo {
	return testTypeInfos(t,
		"    ('_int',[(0,7)]),  #0",
		"    ('_int',[(3,4)]),  #1",
		"    ('_bool',[]),  #2",
		"    ('_blob',[(0,8)]),  #3",
		"    ('_fourcc',[]),  #4",
		"    ('_optional',[0]),  #5",
		"    ('_array',[(0,3),0]),  #6",
		"    ('_bitarray',[(0,6)]),  #7",
		"    ('_choice',[(0,2),{0:('m_a',0),2:('m_b',3)}]),  #8",
		"    ('_struct',[[('m_x',0,0),('m_y',2,1)]]),  #9",
		"    ('_struct',[[('__parent',9,-1),('m_z',1,2)]]),  #10",
		"    ('_null',[]),  #11",
		"    ('_int',[(0,64)]),  #12",
	)
}

// bpInstance decodes one instance, converting decoder panics to errors.
func bpInstance(d *bitPackedDec, typeid int) (v interface{}, err error) {
	defer recoverError(&err)
	return d.instance(typeid), nil
}

func TestBitPackedInt(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(100, 7)
	w.writeBits(5, 4)
	w.writeBits(-1, 64)
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	if v := d.instance(0); v != int64(100) {
		t.Errorf("Unexpected value: %v", v)
	}
	// The offset is added to the raw value:
	if v := d.instance(1); v != int64(8) {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(12); v != int64(-1) {
		t.Errorf("Unexpected value: %v", v)
	}
}

func TestBitPackedBoolOptionalNull(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBool(true)
	w.writeBool(false)
	w.writeBool(false)         // absent optional
	w.writeBool(true)          // present optional
	w.writeBits(42, 7)         // its value
	w.writeBits(0, 3)          // zero padding (byteAlign completes the byte)
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	if v := d.instance(2); v != true {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(2); v != false {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(5); v != nil {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(5); v != int64(42) {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(11); v != nil {
		t.Errorf("Unexpected value: %v", v)
	}
}

func TestBitPackedBlobFourCC(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBlob("storm", 8)
	w.writeAligned([]byte("Hero"))

	d := newBitPackedDec(w.bytes(), tis)
	if v := d.instance(3); v != "storm" {
		t.Errorf("Unexpected value: %v", v)
	}
	if v := d.instance(4); v != "Hero" {
		t.Errorf("Unexpected value: %v", v)
	}
}

func TestBitPackedArray(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(3, 3)
	w.writeBits(10, 7)
	w.writeBits(20, 7)
	w.writeBits(30, 7)
	w.writeBits(0, 8) // one trailing zero byte
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	arr, ok := d.instance(6).([]interface{})
	if !ok || len(arr) != 3 {
		t.Fatalf("Unexpected value: %v", arr)
	}
	for i, expected := range []int64{10, 20, 30} {
		if arr[i] != expected {
			t.Errorf("Unexpected element %d: %v", i, arr[i])
		}
	}
}

func TestBitPackedBitArray(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(12, 6)   // bit count
	w.writeBits(0xab, 8) // first whole byte
	w.writeBits(0x05, 4) // remaining bits
	w.writeBits(0, 2)    // zero padding (byteAlign completes the byte)
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	ba, ok := d.instance(7).(BitArr)
	if !ok {
		t.Fatal("Not a BitArr!")
	}
	if ba.Count != 12 || !bytes.Equal(ba.Data, []byte{0xab, 0x05}) {
		t.Errorf("Unexpected value: %v", ba)
	}
}

func TestBitPackedChoice(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(2, 2) // tag of m_b
	w.writeBlob("ok", 8)

	d := newBitPackedDec(w.bytes(), tis)
	s, ok := d.instance(8).(Struct)
	if !ok || s.Len() != 1 || s.Stringv("m_b") != "ok" {
		t.Errorf("Unexpected value: %v", s)
	}
}

func TestBitPackedChoiceUnknownTag(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(1, 2) // not a registered tag
	w.writeBits(0, 6)
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	_, err := bpInstance(d, 8)
	var ce *CorruptedError
	if !errors.As(err, &ce) {
		t.Errorf("Expected a CorruptedError, got: %v", err)
	}
}

func TestBitPackedStruct(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(12, 7)
	w.writeBool(true)
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	s, ok := d.instance(9).(Struct)
	if !ok {
		t.Fatal("Not a Struct!")
	}
	keys := s.Keys()
	if len(keys) != 2 || keys[0] != "m_x" || keys[1] != "m_y" {
		t.Errorf("Unexpected field order: %v", keys)
	}
	if s.Int("m_x") != 12 || !s.Bool("m_y") {
		t.Errorf("Unexpected value: %v", s)
	}
}

func TestBitPackedStructParent(t *testing.T) {
	tis := decTypeInfos(t)

	w := &bitWriter{}
	w.writeBits(12, 7)  // m_x of the parent
	w.writeBool(false)  // m_y of the parent
	w.writeBits(2, 4)   // m_z
	w.writeBits(0, 4)   // padding to byte boundary
	w.byteAlign()

	d := newBitPackedDec(w.bytes(), tis)
	s, ok := d.instance(10).(Struct)
	if !ok {
		t.Fatal("Not a Struct!")
	}
	// Parent fields are flattened into the enclosing struct:
	keys := s.Keys()
	if len(keys) != 3 || keys[0] != "m_x" || keys[1] != "m_y" || keys[2] != "m_z" {
		t.Errorf("Unexpected field order: %v", keys)
	}
	if s.Int("m_x") != 12 || s.Bool("m_y") || s.Int("m_z") != 5 {
		t.Errorf("Unexpected value: %v", s)
	}
}

func TestBitPackedTruncated(t *testing.T) {
	tis := decTypeInfos(t)

	d := newBitPackedDec([]byte{0xff}, tis)
	_, err := bpInstance(d, 3) // blob with length 255, buffer has no content bytes
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("Expected ErrTruncated, got: %v", err)
	}
}
