package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"
)

// Bag collects the diagnostics of one run up to a fixed limit. Diagnostics
// past the limit are counted in Dropped.
type Bag struct {
	items   []Diagnostic
	max     uint16
	dropped int
}

// NewBag caps the limit at math.MaxUint16.
func NewBag(max int) *Bag {
	capped, err := safecast.Conv[uint16](max)
	if err != nil {
		capped = math.MaxUint16
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(capped, 64)),
		max:   capped,
	}
}

// Add возвращает false, если лимит уже достигнут.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// AddDropped records n diagnostics rejected elsewhere under the same limit.
func (b *Bag) AddDropped(n int) {
	if n > 0 {
		b.dropped += n
	}
}

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// Count returns how many diagnostics are at least as severe as sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

func (b *Bag) HasWarnings() bool {
	return b.Count(SevWarning) > 0
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает внутренний срез; не модифицировать.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Filter returns a new bag holding the diagnostics at or above sev.
func (b *Bag) Filter(sev Severity) *Bag {
	out := &Bag{max: b.max, dropped: b.dropped}
	for _, d := range b.items {
		if d.Severity >= sev {
			out.items = append(out.items, d)
		}
	}
	return out
}

// Merge appends other, raising the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		b.max = uint16(min(total, math.MaxUint16))
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by file, start, end, severity (most severe first), then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.File, y.File),
			cmp.Compare(x.Primary.Off, y.Primary.Off),
			cmp.Compare(x.Primary.End(), y.Primary.End()),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code, file and primary range.
func (b *Bag) Dedup() {
	seen := make(map[rangeKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		key := rangeKey{code: d.Code, file: d.File, start: d.Primary.Off, end: d.Primary.End()}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		return false
	})
}
