package mapmatcher

// Stats holds counts of the leaf outcomes of a Diff
type Stats struct {
	Matched    int `json:"matched"`              // entries that met their expectation
	Missing    int `json:"missing,omitempty"`    // expected entries absent from the actual value
	Unexpected int `json:"unexpected,omitempty"` // actual entries nothing expected
	Tolerated  int `json:"tolerated,omitempty"`  // unexpected entries permitted by ExtraOk
	Mismatched int `json:"mismatched,omitempty"` // present entries that failed their matcher
}

// Failures is the number of outcomes that make a match fail
func (s Stats) Failures() int {
	return s.Missing + s.Unexpected + s.Mismatched
}

// Total is the number of leaf outcomes
func (s Stats) Total() int {
	return s.Matched + s.Tolerated + s.Failures()
}

func (s *Stats) count(op Operation) {
	if s == nil {
		return
	}
	switch op {
	case DTContext:
		s.Matched++
	case DTMissing:
		s.Missing++
	case DTUnexpected:
		s.Unexpected++
	case DTTolerated:
		s.Tolerated++
	case DTMismatch:
		s.Mismatched++
	}
}
