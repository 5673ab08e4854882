package lineage

// TopoSort returns every node reachable from keys such that each node comes
// after all of its parents. Parents referenced but absent from keys are
// emitted too, as parentless nodes.
//
// Nodes are visited in key order and parents in the order they are listed,
// so the result is stable for a fixed input. The walk keeps an explicit
// stack and never recurses, which keeps very long mainline chains off the
// goroutine stack. A parent that is reached again while still open fails
// the sort with a [CycleError].
func TopoSort[K comparable](keys []K, parents map[K][]K) ([]K, error) {
	const (
		unseen uint8 = iota
		open
		done
	)

	type frame struct {
		node K
		next int // index of the next parent to visit
	}

	state := make(map[K]uint8, len(keys))
	order := make([]K, 0, len(keys))
	var stack []frame

	for _, key := range keys {
		if state[key] != unseen {
			continue
		}
		state[key] = open
		stack = append(stack, frame{node: key})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			ps := parents[top.node]
			if top.next < len(ps) {
				p := ps[top.next]
				top.next++
				switch state[p] {
				case open:
					return nil, &CycleError{Node: p}
				case unseen:
					state[p] = open
					stack = append(stack, frame{node: p})
				}
				continue
			}

			state[top.node] = done
			order = append(order, top.node)
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}
