package stormprot

import (
	"encoding/json"
	"testing"
)

func TestParseTypeInfoInt(t *testing.T) {
	ti := parseTypeInfo("    ('_int',[(0,7)]),  #0")
	if ti.spType != spInt || ti.offset != 0 || ti.bits != 7 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_int',[(-2147483648,32)]),  #46")
	if ti.spType != spInt || ti.offset != -2147483648 || ti.bits != 32 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_int',[(0,64)]),  #12")
	if ti.spType != spInt || ti.offset != 0 || ti.bits != 64 {
		t.Errorf("Unexpected type info: %+v", ti)
	}
}

func TestParseTypeInfoIntInvalidBits(t *testing.T) {
	for _, src := range []string{
		"    ('_int',[(0,65)]),",
		"    ('_int',[(-9223372036854775808,64)]),",
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected panic for %q", src)
				}
			}()
			parseTypeInfo(src)
		}()
	}
}

func TestParseTypeInfoStruct(t *testing.T) {
	ti := parseTypeInfo("    ('_struct',[[('m_flags',8,0),('m_major',8,1),('__parent',13,2)]]),  #99")
	if ti.spType != spStruct || len(ti.fields) != 3 {
		t.Fatalf("Unexpected type info: %+v", ti)
	}
	f := ti.fields[0]
	if f.name != "m_flags" || f.typeid != 8 || f.tag != 0 || f.isNameParent {
		t.Errorf("Unexpected field: %+v", f)
	}
	f = ti.fields[2]
	if f.name != "__parent" || f.typeid != 13 || f.tag != 2 || !f.isNameParent {
		t.Errorf("Unexpected field: %+v", f)
	}
	if ti.fieldByTag(1) == nil || ti.fieldByTag(1).name != "m_major" {
		t.Error("fieldByTag failed!")
	}
	if ti.fieldByTag(7) != nil {
		t.Error("fieldByTag returned a non-existing field!")
	}
}

func TestParseTypeInfoChoice(t *testing.T) {
	ti := parseTypeInfo("    ('_choice',[(0,2),{0:('m_uint6',3),1:('m_uint14',4),2:('m_uint22',5),3:('m_uint32',6)}]),  #7")
	if ti.spType != spChoice || ti.offset != 0 || ti.bits != 2 || len(ti.fields) != 4 {
		t.Fatalf("Unexpected type info: %+v", ti)
	}
	f := ti.fieldByTag(2)
	if f == nil || f.name != "m_uint22" || f.typeid != 5 {
		t.Errorf("Unexpected case: %+v", f)
	}
}

func TestParseTypeInfoOthers(t *testing.T) {
	ti := parseTypeInfo("    ('_array',[(0,5),23]),  #24")
	if ti.spType != spArr || ti.bits != 5 || ti.typeid != 23 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_optional',[14]),  #15")
	if ti.spType != spOptional || ti.typeid != 14 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_blob',[(40,0)]),  #28")
	if ti.spType != spBlob || ti.offset != 40 || ti.bits != 0 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_bitarray',[(0,6)]),  #52")
	if ti.spType != spBitArr || ti.bits != 6 {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_bool',[]),  #15")
	if ti.spType != spBool {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_fourcc',[]),  #16")
	if ti.spType != spFourCC {
		t.Errorf("Unexpected type info: %+v", ti)
	}

	ti = parseTypeInfo("    ('_null',[]),  #91")
	if ti.spType != spNull {
		t.Errorf("Unexpected type info: %+v", ti)
	}
}

func TestStructOrder(t *testing.T) {
	s := NewStruct()
	s.Put("b", int64(1))
	s.Put("a", int64(2))
	s.Put("c", int64(3))

	keys := s.Keys()
	if len(keys) != 3 || keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("Insertion order not preserved: %v", keys)
	}

	// Overwriting keeps the original position:
	s.Put("a", int64(9))
	keys = s.Keys()
	if len(keys) != 3 || keys[1] != "a" {
		t.Errorf("Overwrite changed field order: %v", keys)
	}
	if s.Int("a") != 9 {
		t.Error("Overwrite lost the new value!")
	}
}

func TestStructJSON(t *testing.T) {
	inner := NewStruct()
	inner.Put("y", int64(2))
	inner.Put("x", int64(1))

	s := NewStruct()
	s.Put("zeta", "hi")
	s.Put("alpha", inner)
	s.Put("flag", true)
	s.Put("nothing", nil)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `{"zeta":"hi","alpha":{"y":2,"x":1},"flag":true,"nothing":null}`
	if string(data) != expected {
		t.Errorf("Unexpected JSON:\n got: %s\nwant: %s", data, expected)
	}
}

func TestStructValue(t *testing.T) {
	inner := NewStruct()
	inner.Put("m_baseBuild", int64(39271))

	s := NewStruct()
	s.Put("m_version", inner)
	s.Put("m_signature", "sig")
	s.Put("m_useScaledTime", false)
	s.Put("m_list", []interface{}{int64(1)})
	s.Put("m_bits", BitArr{Count: 3, Data: []byte{0x05}})

	if s.Int("m_version", "m_baseBuild") != 39271 {
		t.Error("Unexpected value!")
	}
	if s.Stringv("m_signature") != "sig" {
		t.Error("Unexpected value!")
	}
	if s.Bool("m_useScaledTime") {
		t.Error("Unexpected value!")
	}
	if len(s.Array("m_list")) != 1 {
		t.Error("Unexpected value!")
	}
	if s.BitArr("m_bits").Count != 3 {
		t.Error("Unexpected value!")
	}
	if s.Value("m_version", "m_noSuch") != nil {
		t.Error("Unexpected value!")
	}
	if s.Value() != nil {
		t.Error("Unexpected value!")
	}
	mVersion := s.Structv("m_version")
	if !mVersion.Has("m_baseBuild") {
		t.Error("Unexpected value!")
	}
}

func TestStructMerge(t *testing.T) {
	s := NewStruct()
	s.Put("a", int64(1))
	s.Put("b", int64(2))

	s2 := NewStruct()
	s2.Put("b", int64(20))
	s2.Put("c", int64(30))

	s.merge(s2)

	keys := s.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Unexpected keys after merge: %v", keys)
	}
	// Later fields win on name collision:
	if s.Int("b") != 20 {
		t.Error("Merge did not overwrite colliding field!")
	}
}

func TestBitArr(t *testing.T) {
	ba := BitArr{Count: 12, Data: []byte{0xa5, 0x03}}

	if !ba.Bit(0) || ba.Bit(1) || !ba.Bit(2) || !ba.Bit(7) || !ba.Bit(8) || !ba.Bit(9) || ba.Bit(10) {
		t.Error("Unexpected bit values!")
	}
	if ba.Ones() != 6 {
		t.Errorf("Unexpected ones count: %d", ba.Ones())
	}
	if ba.String() != "0xa503 (count=12)" {
		t.Errorf("Unexpected string: %s", ba.String())
	}
}
