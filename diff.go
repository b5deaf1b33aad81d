package mapmatcher

// DiffConfig are any possible configuration parameters for calculating diffs
type DiffConfig struct {
	// Provide a non-nil stats pointer & diff will populate it with counts of
	// each outcome
	Stats *Stats
	// If true entries that met their expectation are left out, keeping only
	// the path to each failure
	OmitContext bool
}

// DiffOption is a function that adjust a config, zero or more DiffOptions
// can be passed to the Diff function
type DiffOption func(cfg *DiffConfig)

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// OptionOmitContext drops matched entries from the output
func OptionOmitContext() DiffOption {
	return func(cfg *DiffConfig) {
		cfg.OmitContext = true
	}
}

// Diff checks actual against m & returns the outcome for every entry as a
// tree of Deltas, visiting entries in the same order DescribeMismatch
// prints them. When m is a MapMatcher or ListMatcher & actual the matching
// container kind, the result is the list of outcomes for its entries.
// Otherwise the result is a single root Delta with a nil Path
func Diff(m Matcher, actual interface{}, opts ...DiffOption) Deltas {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &diff{cfg: cfg}
	if s, ok := m.(structured); ok && s.accepts(actual) {
		return d.children(s, actual)
	}
	return appendDelta(nil, d.entry(nil, m, actual))
}

// diff carries configuration through a single Diff call
type diff struct {
	cfg *DiffConfig
}

func (d *diff) children(s structured, actual interface{}) Deltas {
	switch x := s.(type) {
	case *MapMatcher:
		return d.mapDeltas(x, actual)
	case *ListMatcher:
		return d.listDeltas(x, actual)
	}
	return nil
}

func (d *diff) mapDeltas(m *MapMatcher, actual interface{}) (dts Deltas) {
	obj, _ := asObject(actual)
	for p := m.oldest(); p != nil; p = p.Next() {
		addr := keyAddr(p.Key)
		v, ok := obj.Get(p.Key)
		if !ok {
			dts = appendDelta(dts, d.leaf(&Delta{Type: DTMissing, Path: addr, Expected: expectation(p.Value)}))
			continue
		}
		dts = appendDelta(dts, d.entry(addr, p.Value, v))
	}
	for _, p := range obj.Pairs() {
		if _, ok := m.get(p.key); ok {
			continue
		}
		typ := DTUnexpected
		if m.extraOk {
			typ = DTTolerated
		}
		dts = appendDelta(dts, d.leaf(&Delta{Type: typ, Path: keyAddr(p.key), Value: p.value}))
	}
	return dts
}

func (d *diff) listDeltas(m *ListMatcher, actual interface{}) (dts Deltas) {
	items, _ := asArray(actual)
	for i, matcher := range m.matchers {
		if i >= len(items) {
			dts = appendDelta(dts, d.leaf(&Delta{Type: DTMissing, Path: IndexAddr(i), Expected: expectation(matcher)}))
			continue
		}
		dts = appendDelta(dts, d.entry(IndexAddr(i), matcher, items[i]))
	}
	for i := len(m.matchers); i < len(items); i++ {
		dts = appendDelta(dts, d.leaf(&Delta{Type: DTUnexpected, Path: IndexAddr(i), Value: items[i]}))
	}
	return dts
}

// entry computes the outcome for a value that's present
func (d *diff) entry(addr Addr, m Matcher, v interface{}) *Delta {
	if s, ok := m.(structured); ok {
		if !s.accepts(v) {
			return d.leaf(&Delta{Type: DTMismatch, Path: addr, Value: v, Expected: s.noun()})
		}
		children := d.children(s, v)
		if len(children) > 0 {
			return &Delta{Type: DTContext, Path: addr, Deltas: children}
		}
		if !isEmpty(v) {
			// every child matched & was omitted
			return nil
		}
		// an empty container that met its expectation is itself a leaf
		return d.leaf(&Delta{Type: DTContext, Path: addr, Value: v})
	}
	if m.Matches(v) {
		return d.leaf(&Delta{Type: DTContext, Path: addr, Value: v})
	}
	return d.leaf(&Delta{Type: DTMismatch, Path: addr, Value: v, Expected: m.Describe()})
}

// leaf records a leaf outcome, returning nil if it should be left out
func (d *diff) leaf(dlt *Delta) *Delta {
	d.cfg.Stats.count(dlt.Type)
	if dlt.Type == DTContext && d.cfg.OmitContext {
		return nil
	}
	return dlt
}

func isEmpty(container interface{}) bool {
	if obj, ok := asObject(container); ok {
		return obj.Len() == 0
	}
	items, _ := asArray(container)
	return len(items) == 0
}

func appendDelta(dts Deltas, dlt *Delta) Deltas {
	if dlt == nil {
		return dts
	}
	return append(dts, dlt)
}
