package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/NateSeymour/buffalo"
)

// terminalSet is an ordered set of terminal ids. FIRST and FOLLOW are
// built from terminalSets; the ordering makes every iteration over them
// deterministic, which keeps table construction reproducible.
type terminalSet struct {
	set *treeset.Set
}

func newTerminalSet() *terminalSet {
	return &terminalSet{
		set: treeset.NewWith(utils.IntComparator),
	}
}

func (s *terminalSet) add(id buffalo.TerminalID) bool {
	if s.set.Contains(id.Int()) {
		return false
	}
	s.set.Add(id.Int())
	return true
}

// merge adds every member of o and reports whether s grew.
func (s *terminalSet) merge(o *terminalSet) bool {
	if o == nil {
		return false
	}
	changed := false
	it := o.set.Iterator()
	for it.Next() {
		if s.add(buffalo.TerminalID(it.Value().(int))) {
			changed = true
		}
	}
	return changed
}

func (s *terminalSet) contains(id buffalo.TerminalID) bool {
	return s.set.Contains(id.Int())
}

func (s *terminalSet) size() int {
	return s.set.Size()
}

// values returns the members in ascending id order, which is terminal
// declaration order.
func (s *terminalSet) values() []buffalo.TerminalID {
	vals := s.set.Values()
	ids := make([]buffalo.TerminalID, len(vals))
	for i, v := range vals {
		ids[i] = buffalo.TerminalID(v.(int))
	}
	return ids
}
