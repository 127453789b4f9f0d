package source

import (
	"slices"
	"strings"
)

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates symbol text. The driver uses it to count distinct
// identifiers per file.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, inserting a private copy on first sight.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}
	// span text shares the source buffer, keep our own copy
	cpy := strings.Clone(s)
	id := StringID(mustU32(len(i.byID)))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// InternSpan interns the text of a span.
func (i *Interner) InternSpan(s Span) StringID {
	return i.Intern(s.Text)
}

// Lookup returns the string for id, or false if id is unknown.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, NoStringID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all interned strings in ID order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}

