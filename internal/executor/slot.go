package executor

import value "github.com/hanpama/gqlcore/internal/value"

type slotKind uint8

const (
	slotLeaf slotKind = iota
	slotList
	slotObject
	slotPending
)

// slot is one position of the response under construction. Completion
// writes into slots so that a null can be applied to any ancestor after the
// fact, including once async results arrive in later waves.
type slot struct {
	parent  *slot
	nonNull bool
	nulled  bool

	kind   slotKind
	leaf   value.Value
	items  []*slot
	fields []namedSlot
}

type namedSlot struct {
	name string
	slot *slot
}

// child appends a field slot to an object slot. Response keys stay in
// first-collected order.
func (s *slot) child(name string, nonNull bool) *slot {
	c := &slot{parent: s, nonNull: nonNull}
	s.fields = append(s.fields, namedSlot{name: name, slot: c})
	return c
}

func (s *slot) setLeaf(v value.Value) {
	s.kind = slotLeaf
	s.leaf = v
}

func (s *slot) finalize() value.Value {
	if s.nulled {
		return value.Null()
	}
	switch s.kind {
	case slotLeaf:
		return s.leaf
	case slotList:
		items := make([]value.Value, len(s.items))
		for i, item := range s.items {
			items[i] = item.finalize()
		}
		return value.List(items...)
	case slotObject:
		b := value.NewObjectBuilder(len(s.fields))
		for _, f := range s.fields {
			b.Set(f.name, f.slot.finalize())
		}
		return b.Build()
	}
	return value.Null()
}
