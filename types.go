package fakedata

import "sort"

// LocaleTable holds the formats and value pools of a single locale.
type LocaleTable struct {
	Code     string
	Name     string
	Fallback string
	Formats  map[string][]string
	Pools    map[string]Pool
}

// Pool is a literal value set, optionally weighted.
type Pool struct {
	Values  []string
	Weights []float64
}

// Weighted reports whether the pool carries per value weights.
func (p Pool) Weighted() bool {
	return len(p.Weights) > 0
}

// Len returns the number of values.
func (p Pool) Len() int {
	return len(p.Values)
}

func (p Pool) Clone() Pool {
	out := Pool{}
	if len(p.Values) > 0 {
		out.Values = append([]string(nil), p.Values...)
	}
	if len(p.Weights) > 0 {
		out.Weights = append([]float64(nil), p.Weights...)
	}
	return out
}

// EntryKind tells whether a looked up key is a format entry or a pool.
type EntryKind int

const (
	EntryFormat EntryKind = iota + 1
	EntryPool
)

func (k EntryKind) String() string {
	switch k {
	case EntryFormat:
		return "format"
	case EntryPool:
		return "pool"
	default:
		return "unknown"
	}
}

// Entry is the result of a chain lookup. Locale is the table that defined the key.
type Entry struct {
	Kind    EntryKind
	Key     string
	Locale  string
	Formats []string
	Pool    Pool
}

// Format returns the format templates of the table, ok=false if missing.
func (t *LocaleTable) Format(key string) ([]string, bool) {
	if t == nil || t.Formats == nil {
		return nil, false
	}
	formats, ok := t.Formats[key]
	return formats, ok
}

// Pool returns the pool of the table, ok=false if missing.
func (t *LocaleTable) Pool(key string) (Pool, bool) {
	if t == nil || t.Pools == nil {
		return Pool{}, false
	}
	pool, ok := t.Pools[key]
	return pool, ok
}

// Keys returns every format and pool key, sorted.
func (t *LocaleTable) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.Formats)+len(t.Pools))
	for key := range t.Formats {
		keys = append(keys, key)
	}
	for key := range t.Pools {
		if _, dup := t.Formats[key]; dup {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (t *LocaleTable) Clone() *LocaleTable {
	if t == nil {
		return nil
	}

	out := &LocaleTable{
		Code:     t.Code,
		Name:     t.Name,
		Fallback: t.Fallback,
	}

	if len(t.Formats) > 0 {
		out.Formats = make(map[string][]string, len(t.Formats))
		for key, formats := range t.Formats {
			out.Formats[key] = append([]string(nil), formats...)
		}
	}

	if len(t.Pools) > 0 {
		out.Pools = make(map[string]Pool, len(t.Pools))
		for key, pool := range t.Pools {
			out.Pools[key] = pool.Clone()
		}
	}

	return out
}
