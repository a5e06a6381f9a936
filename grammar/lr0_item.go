package grammar

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
	"strconv"
)

// lrItem is a production rule with a dot position in [0, |sequence|].
//
// E -> E + T
//
// Dot | Dotted Symbol | Item
// ----+---------------+------------
// 0   | E             | E -> · E + T
// 1   | +             | E -> E · + T
// 2   | T             | E -> E + · T
// 3   | Nil           | E -> E + T ·
//
// Items are value types; two items are the same item iff rule and dot
// are equal, so items can be used directly as map keys.
type lrItem struct {
	rule      ruleNum
	dot       int
	dottedSym sym

	// When reducible is true, the dot is past the last symbol.
	reducible bool

	// When kernel is true, the item is a kernel item: the dot has been
	// advanced at least once, or the item starts a rule of the start
	// non-terminal.
	kernel bool
}

func newLRItem[V any](g *Grammar[V], rule ruleNum, dot int) lrItem {
	r := g.Rule(rule.Int())

	dottedSym := sym{}
	if dot < r.Len() {
		dottedSym = r.syms[dot]
	}

	initial := r.lhs == g.start && dot == 0

	return lrItem{
		rule:      rule,
		dot:       dot,
		dottedSym: dottedSym,
		reducible: dot == r.Len(),
		kernel:    initial || dot > 0,
	}
}

func (i lrItem) less(o lrItem) bool {
	if i.rule != o.rule {
		return i.rule < o.rule
	}
	return i.dot < o.dot
}

type kernelID [32]byte

type kernel struct {
	id    kernelID
	items []lrItem
}

// newKernel canonicalises the items (duplicates removed, sorted by rule
// then dot) and derives the kernel's identity by hashing the sorted
// keys. Two states are the same state iff their kernel ids are equal.
func newKernel(items []lrItem) *kernel {
	m := map[lrItem]struct{}{}
	for _, item := range items {
		m[item] = struct{}{}
	}
	sortedItems := make([]lrItem, 0, len(m))
	for item := range m {
		sortedItems = append(sortedItems, item)
	}
	sort.Slice(sortedItems, func(i, j int) bool {
		return sortedItems[i].less(sortedItems[j])
	})

	var id kernelID
	{
		b := make([]byte, 0, len(sortedItems)*8)
		buf := make([]byte, 8)
		for _, item := range sortedItems {
			binary.LittleEndian.PutUint32(buf[:4], uint32(item.rule))
			binary.LittleEndian.PutUint32(buf[4:], uint32(item.dot))
			b = append(b, buf...)
		}
		id = sha256.Sum256(b)
	}

	return &kernel{
		id:    id,
		items: sortedItems,
	}
}

type stateNum int

const stateNumInitial = stateNum(0)

func (n stateNum) Int() int {
	return int(n)
}

func (n stateNum) String() string {
	return strconv.Itoa(int(n))
}

func (n stateNum) next() stateNum {
	return stateNum(n + 1)
}
