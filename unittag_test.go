package stormprot

import "testing"

func TestUnitTagRoundTrip(t *testing.T) {
	indexes := []int64{0, 1, 2, 100, 1 << 10, 1<<14 - 1}
	recycles := []int64{0, 1, 7, 500, 1 << 17, 1<<18 - 1}

	for _, idx := range indexes {
		for _, rec := range recycles {
			tag := UnitTag(idx, rec)
			if UnitTagIndex(tag) != idx {
				t.Errorf("Index round trip failed: %d -> %d -> %d", idx, tag, UnitTagIndex(tag))
			}
			if UnitTagRecycle(tag) != rec {
				t.Errorf("Recycle round trip failed: %d -> %d -> %d", rec, tag, UnitTagRecycle(tag))
			}
		}
	}
}

func TestUnitTag(t *testing.T) {
	if UnitTag(1, 1) != (1<<18)|1 {
		t.Error("Unexpected value!")
	}
	if UnitTagIndex(0x7fffffff) != 0x1fff {
		t.Error("Unexpected value!")
	}
	if UnitTagRecycle(0x7fffffff) != 0x3ffff {
		t.Error("Unexpected value!")
	}
}
