package merkle

import "fmt"

// ProofStep is one sibling on the path from a leaf to the root.
type ProofStep struct {
	Position Position
	Sibling  Hash
}

// Proof is ordered leaf -> root and excludes the root itself.
type Proof []ProofStep

// GenerateProof folds records while tracking the leaf for id and returns the
// root, the proof for that leaf and the committed balance.
//
// The record is located before any hashing is done. If it is absent
// ErrRecordNotFound is returned and no root is produced.
func GenerateProof(records []Record, id int64, tags Tags) (Hash, Proof, uint64, error) {
	index := IndexOf(records, id)
	if index < 0 {
		return Hash{}, nil, 0, fmt.Errorf("%w: id %d", ErrRecordNotFound, id)
	}
	if err := tags.Validate(); err != nil {
		return Hash{}, nil, 0, err
	}

	leafTagger, branchTagger := tags.hashers()
	res := fold(branchTagger, LeafHashes(leafTagger, records), foldOptions{track: index})
	return res.root, res.proof, records[index].Balance, nil
}

// GenerateProofFromTree searches tree for a leaf whose hash equals leafHash
// and returns the proof for the first such leaf, in record order. ok is false
// when no leaf matches, callers must treat that as ErrRecordNotFound.
func GenerateProofFromTree(tree *Tree, leafHash Hash) (Proof, bool) {
	if tree == nil || len(tree.nodes) == 0 {
		return nil, false
	}
	proof := make(Proof, 0, ProofLen(uint64(tree.leafCount)))
	if !tree.searchPath(tree.root, leafHash, &proof) {
		return nil, false
	}
	return proof, true
}

// ProveRecord is GenerateProofFromTree for a record, hashed with the tree's
// tags.
func (t *Tree) ProveRecord(r Record) (Proof, bool) {
	return GenerateProofFromTree(t, t.tags.LeafHash(r))
}

// searchPath descends left first. Steps are appended while unwinding, which
// leaves the path in leaf -> root order.
func (t *Tree) searchPath(ref Ref, target Hash, path *Proof) bool {
	n := t.nodes[ref]
	if n.isLeaf() {
		return n.hash == target
	}

	if t.searchPath(n.left, target, path) {
		*path = append(*path, ProofStep{Position: SiblingRight, Sibling: t.nodes[n.right].hash})
		return true
	}

	if t.searchPath(n.right, target, path) {
		*path = append(*path, ProofStep{Position: SiblingLeft, Sibling: t.nodes[n.left].hash})
		return true
	}
	return false
}
