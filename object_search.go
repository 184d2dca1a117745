// object_search.go - get_next_object: depth-first parent/attribute scan

package main

const (
	gnoStackDepth  = 128
	gnoScratchSize = 32
	gnoSentinel    = 0x1f
)

// ObjectSearchResult is the full output of one GetNextObject call: the
// (possibly updated) resumable search-position pair, the object found
// (0 if none), the running found-count, and the current search depth
// (§4.6).
type ObjectSearchResult struct {
	HiSearchPos uint16
	SearchPos   uint16
	Object      uint16
	Found       uint16
	Depth       uint16
}

// ObjectSearch holds the resumable state carried across calls to
// GetNextObject: the scan cursor, the work stack, and the class-visited
// scratch mask (§4.6).
type ObjectSearch struct {
	numObjectFound  uint16
	object          uint16
	gnoSP           int
	searchDepth     uint16
	initHiSearchPos uint16
	gnoStack        [gnoStackDepth]uint16
	gnoScratch      [gnoScratchSize]byte
}

// NewObjectSearch returns a fresh, unstarted search.
func NewObjectSearch() *ObjectSearch {
	return &ObjectSearch{gnoSP: gnoStackDepth}
}

func (s *ObjectSearch) initGetObj() {
	s.numObjectFound = 0
	s.object = 0
	s.gnoScratch = [gnoScratchSize]byte{}
}

func readListByte(list []byte, index uint16) uint16 {
	if int(index) >= len(list) {
		return 0
	}
	return uint16(list[index])
}

// GetNextObject implements the algorithm in §4.6. list2 is the parent-
// index array and list3 the attribute+depth array, both views into the
// workspace list area at the header's list2/list3 base offsets. maxObject
// bounds the linear scan of each level (d2 in the original).
func (s *ObjectSearch) GetNextObject(maxObject uint16, hiSearchPos, searchPos uint16, list2, list3 []byte) ObjectSearchResult {
	d3, d4 := hiSearchPos, searchPos

	for {
		if d3|d4 == 0 {
			s.gnoSP = gnoStackDepth
			s.searchDepth = 0
			s.initGetObj()
			break
		}

		if s.numObjectFound == 0 {
			s.initHiSearchPos = d3
		}

		if res, ok := s.scanLevel(maxObject, &d3, d4, list2, list3); ok {
			return res
		}

		if s.initHiSearchPos == gnoSentinel {
			s.gnoScratch[d3] = 0
			d3 = 0
			for {
				if s.gnoScratch[d3] != 0 {
					s.gnoSP--
					s.gnoStack[s.gnoSP] = d4
					s.gnoSP--
					s.gnoStack[s.gnoSP] = d3
				}
				d3++
				if d3 >= gnoSentinel {
					break
				}
			}
		}

		if s.gnoSP != gnoStackDepth {
			d3 = s.gnoStack[s.gnoSP]
			s.gnoSP++
			d4 = s.gnoStack[s.gnoSP]
			s.gnoSP++
		} else {
			d3, d4 = 0, 0
		}

		s.numObjectFound = 0
		if d3 == gnoSentinel {
			s.searchDepth++
		}
		s.initGetObj()

		if d4 == 0 {
			break
		}
	}

	return ObjectSearchResult{
		Object: 0,
		Found:  s.numObjectFound,
		Depth:  s.searchDepth,
	}
}

// scanLevel is the inner "gnonext" scan: advance object while
// object <= maxObject, looking for a list2 entry matching d4. Returns
// ok=true with the found-result when a match accepts at this depth.
func (s *ObjectSearch) scanLevel(maxObject uint16, d3 *uint16, d4 uint16, list2, list3 []byte) (ObjectSearchResult, bool) {
	for {
		s.object++
		if readListByte(list2, s.object) == d4 {
			d6 := readListByte(list3, s.object) & 0x1f

			if d6 != *d3 {
				if d6 == 0 || *d3 == 0 {
					if s.object <= maxObject {
						continue
					}
					break
				}
				if *d3 != gnoSentinel {
					s.gnoScratch[d6] = byte(d6)
					if s.object <= maxObject {
						continue
					}
					break
				}
				*d3 = d6
			}

			s.numObjectFound++
			s.gnoSP--
			s.gnoStack[s.gnoSP] = s.object
			s.gnoSP--
			s.gnoStack[s.gnoSP] = gnoSentinel

			return ObjectSearchResult{
				HiSearchPos: *d3,
				SearchPos:   d4,
				Object:      s.object,
				Found:       s.numObjectFound,
				Depth:       s.searchDepth,
			}, true
		}
		if s.object > maxObject {
			break
		}
	}
	return ObjectSearchResult{}, false
}
