/*

Implementation of the bit-packed decoder.

*/

package stormprot

// Bit-packed decoder. The wire carries no type tags: the reader consumes
// exactly what the type info tables dictate.
type bitPackedDec struct {
	*bitPackedBuff            // Data source: bit-packed buffer
	typeInfos      []typeInfo // Type descriptors
}

// newBitPackedDec creates a new bit-packed decoder.
func newBitPackedDec(contents []byte, typeInfos []typeInfo) *bitPackedDec {
	return &bitPackedDec{
		bitPackedBuff: &bitPackedBuff{
			contents:  contents,
			bigEndian: true, // All bit-packed decoding uses big endian order
		},
		typeInfos: typeInfos,
	}
}

// instance decodes a value specified by its type id and returns the decoded value.
func (d *bitPackedDec) instance(typeid int) interface{} {
	b := d.bitPackedBuff // Local var for efficiency and more compact code

	ti := &d.typeInfos[typeid] // Pointer to avoid copying the struct

	// Helper function to read an integer specified by the type info
	readInt := func() int64 {
		return ti.offset + b.readBits(byte(ti.bits))
	}

	switch ti.spType {
	case spInt:
		return readInt()
	case spStruct:
		s := NewStruct()
		for i := range ti.fields {
			f := &ti.fields[i]
			if f.isNameParent {
				parent := d.instance(f.typeid)
				if s2, ok := parent.(Struct); ok {
					s.merge(s2)
				} else if len(ti.fields) == 1 {
					return parent
				} else {
					s.Put(f.name, parent)
				}
			} else {
				s.Put(f.name, d.instance(f.typeid))
			}
		}
		return s
	case spChoice:
		tag := int(readInt())
		f := ti.fieldByTag(tag)
		if f == nil {
			corrupted("unknown choice tag %d at bit %d", tag, b.usedBits())
		}
		s := NewStruct()
		s.Put(f.name, d.instance(f.typeid))
		return s
	case spArr:
		length := readInt()
		arr := make([]interface{}, length)
		for i := range arr {
			arr[i] = d.instance(ti.typeid)
		}
		return arr
	case spBitArr:
		// length may be > 64, so simple readBits() is not enough
		length := int(readInt())
		buf := make([]byte, (length+7)/8)    // Number of required bytes
		copy(buf, b.readUnaligned(length/8)) // Number of whole bytes:
		if remaining := byte(length % 8); remaining != 0 {
			buf[len(buf)-1] = byte(b.readBits(remaining))
		}
		return BitArr{Count: length, Data: buf}
	case spBlob:
		length := readInt()
		return string(b.readAligned(int(length)))
	case spOptional:
		if b.readBits1() {
			return d.instance(ti.typeid)
		}
		return nil
	case spBool:
		return b.readBits1()
	case spFourCC:
		return string(b.readAligned(4))
	case spNull:
		return nil
	}

	return nil
}
