package merkle

type node struct {
	hash  Hash
	left  Ref
	right Ref
}

func (n node) isLeaf() bool { return n.left == NoRef && n.right == NoRef }

type foldOptions struct {
	// retain keeps every computed node in an arena.
	retain bool
	// track is the leaf index to collect a proof for, or -1.
	track int
}

type foldResult struct {
	root    Hash
	proof   Proof
	nodes   []node
	rootRef Ref
}

// fold reduces the leaf hashes to a root. It is the only place levels are
// paired, so the ephemeral root, the materialized tree and the index tracked
// proof can not disagree about sibling order.
//
// The caller guarantees len(leaves) > 0 and, when tracking, 0 <= track < len(leaves).
func fold(branch *Tagger, leaves []Hash, opts foldOptions) foldResult {
	var res foldResult

	// Copy, the odd width rule appends to the level.
	level := make([]Hash, len(leaves), len(leaves)+1)
	copy(level, leaves)

	var refs []Ref
	if opts.retain {
		res.nodes = make([]node, 0, NodeCount(uint64(len(leaves))))
		refs = make([]Ref, len(leaves), len(leaves)+1)
		for i, h := range leaves {
			res.nodes = append(res.nodes, node{hash: h, left: NoRef, right: NoRef})
			refs[i] = Ref(i)
		}
	}

	index := opts.track
	if index >= 0 {
		res.proof = make(Proof, 0, ProofLen(uint64(len(leaves))))
	}

	for len(level) > 1 {

		// Odd width: the last node is paired with itself.
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
			if opts.retain {
				refs = append(refs, refs[len(refs)-1])
			}
		}

		if index >= 0 {
			if index%2 == 0 {
				res.proof = append(res.proof, ProofStep{Position: SiblingRight, Sibling: level[index+1]})
			} else {
				res.proof = append(res.proof, ProofStep{Position: SiblingLeft, Sibling: level[index-1]})
			}
			index /= 2
		}

		next := make([]Hash, len(level)/2, len(level)/2+1)
		var nextRefs []Ref
		if opts.retain {
			nextRefs = make([]Ref, len(level)/2, len(level)/2+1)
		}

		for i := 0; i < len(level); i += 2 {
			parent := branch.SumPair(level[i], level[i+1])
			next[i/2] = parent

			if opts.retain {
				res.nodes = append(res.nodes, node{hash: parent, left: refs[i], right: refs[i+1]})
				nextRefs[i/2] = Ref(len(res.nodes) - 1)
			}
		}

		level = next
		refs = nextRefs
	}

	res.root = level[0]
	res.rootRef = NoRef
	if opts.retain {
		res.rootRef = refs[0]
	}
	return res
}
