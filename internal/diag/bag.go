package diag

import (
	"cmp"
	"slices"

	"fortio.org/safecast"
)

// Bag is a bounded, append-only collection of diagnostics for one unit of work.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// clampLimit переводит лимит в uint16, насыщаясь сверху.
func clampLimit(n int) uint16 {
	m, err := safecast.Conv[uint16](n)
	if err != nil {
		return ^uint16(0)
	}
	return m
}

func NewBag(limit int) *Bag {
	m := clampLimit(limit)
	return &Bag{items: make([]Diagnostic, 0, min(int(m), 64)), max: m}
}

// Add appends d unless the bag is full; false means d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }
func (b *Bag) Len() int    { return len(b.items) }

// Items возвращает внутренний срез: только для чтения.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

// Count returns how many diagnostics have exactly sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Merge appends everything from other; the limit grows to fit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		b.max = clampLimit(total)
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file and span, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for each code at each primary span.
func (b *Bag) Dedup() {
	seen := make(map[diagKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := diagKey{code: d.Code, span: d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
