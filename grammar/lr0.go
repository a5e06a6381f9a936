package grammar

import (
	"sort"
)

type lrState struct {
	*kernel
	num       stateNum
	next      map[sym]kernelID
	nextSyms  []sym
	closure   []lrItem
	reducible []ruleNum
}

type lr0Automaton struct {
	initialState kernelID
	states       map[kernelID]*lrState
	stateList    []*lrState
}

// genLR0Automaton enumerates the canonical collection of LR(0) item
// sets, starting from the kernel holding the start non-terminal's rules
// at dot 0. Kernels are deduplicated by their canonical id; neighbour
// kernels are visited in symbol order, so state numbering only depends
// on the grammar.
func genLR0Automaton[V any](g *Grammar[V]) *lr0Automaton {
	automaton := &lr0Automaton{
		states: map[kernelID]*lrState{},
	}

	currentState := stateNumInitial
	knownKernels := map[kernelID]struct{}{}
	uncheckedKernels := []*kernel{}

	{
		initialItems := make([]lrItem, 0, len(g.start.rules))
		for _, r := range g.start.rules {
			initialItems = append(initialItems, newLRItem(g, r.num, 0))
		}
		k := newKernel(initialItems)

		automaton.initialState = k.id
		knownKernels[k.id] = struct{}{}
		uncheckedKernels = append(uncheckedKernels, k)
	}

	for len(uncheckedKernels) > 0 {
		nextUncheckedKernels := []*kernel{}
		for _, k := range uncheckedKernels {
			state, neighbours := genStateAndNeighbourKernels(g, k)
			state.num = currentState
			currentState = currentState.next()

			automaton.states[state.id] = state
			automaton.stateList = append(automaton.stateList, state)

			for _, nk := range neighbours {
				if _, known := knownKernels[nk.id]; known {
					continue
				}
				knownKernels[nk.id] = struct{}{}
				nextUncheckedKernels = append(nextUncheckedKernels, nk)
			}
		}
		uncheckedKernels = nextUncheckedKernels
	}

	tracer().Debugf("LR(0) automaton has %d states", len(automaton.stateList))

	return automaton
}

func genStateAndNeighbourKernels[V any](g *Grammar[V], k *kernel) (*lrState, []*kernel) {
	items := genClosure(g, k)
	neighbours := genNeighbourKernels(g, items)

	next := map[sym]kernelID{}
	nextSyms := make([]sym, 0, len(neighbours))
	kernels := make([]*kernel, 0, len(neighbours))
	for _, n := range neighbours {
		next[n.symbol] = n.kernel.id
		nextSyms = append(nextSyms, n.symbol)
		kernels = append(kernels, n.kernel)
	}

	var reducible []ruleNum
	for _, item := range items {
		if item.reducible {
			reducible = append(reducible, item.rule)
		}
	}
	sort.Slice(reducible, func(i, j int) bool {
		return reducible[i] < reducible[j]
	})

	return &lrState{
		kernel:    k,
		next:      next,
		nextSyms:  nextSyms,
		closure:   items,
		reducible: reducible,
	}, kernels
}

// genClosure completes the kernel under "expand non-terminal at dot":
// for every item whose next symbol is a non-terminal, the start items
// of that non-terminal's rules join the set.
func genClosure[V any](g *Grammar[V], k *kernel) []lrItem {
	items := []lrItem{}
	knownItems := map[lrItem]struct{}{}
	uncheckedItems := []lrItem{}
	for _, item := range k.items {
		items = append(items, item)
		knownItems[item] = struct{}{}
		uncheckedItems = append(uncheckedItems, item)
	}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSym.isNonTerminal() {
				continue
			}

			nt := g.nonTerminals[item.dottedSym.nonTerminal()]
			for _, prod := range nt.rules {
				it := newLRItem(g, prod.num, 0)
				if _, exist := knownItems[it]; exist {
					continue
				}
				items = append(items, it)
				knownItems[it] = struct{}{}
				nextUncheckedItems = append(nextUncheckedItems, it)
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return items
}

type neighbourKernel struct {
	symbol sym
	kernel *kernel
}

// genNeighbourKernels groups the advanced items of a closure by their
// dotted symbol. The resulting kernels are ordered by symbol so that
// automaton construction is deterministic.
func genNeighbourKernels[V any](g *Grammar[V], items []lrItem) []*neighbourKernel {
	kItemMap := map[sym][]lrItem{}
	for _, item := range items {
		if item.dottedSym.isNil() {
			continue
		}
		kItem := newLRItem(g, item.rule, item.dot+1)
		kItemMap[item.dottedSym] = append(kItemMap[item.dottedSym], kItem)
	}

	nextSyms := make([]sym, 0, len(kItemMap))
	for s := range kItemMap {
		nextSyms = append(nextSyms, s)
	}
	sort.Slice(nextSyms, func(i, j int) bool {
		return nextSyms[i].key() < nextSyms[j].key()
	})

	kernels := make([]*neighbourKernel, 0, len(nextSyms))
	for _, s := range nextSyms {
		kernels = append(kernels, &neighbourKernel{
			symbol: s,
			kernel: newKernel(kItemMap[s]),
		})
	}

	return kernels
}
