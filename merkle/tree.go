package merkle

import "fmt"

// Tree is a materialized Merkle tree. Nodes are held in an arena and address
// their children by Ref. Leaves occupy refs [0, LeafCount()) in record order,
// branches follow in the order they were folded, and the root is last.
//
// A Tree is immutable once built and is safe for concurrent readers.
type Tree struct {
	tags      Tags
	nodes     []node
	root      Ref
	leafCount int
}

// BuildTree leaf hashes the records and folds them, retaining every node.
func BuildTree(records []Record, tags Tags) (*Tree, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	if err := tags.Validate(); err != nil {
		return nil, err
	}
	leafTagger, branchTagger := tags.hashers()
	return buildTree(tags, branchTagger, LeafHashes(leafTagger, records)), nil
}

// BuildTreeFromLeaves builds a tree over leaf hashes that were computed by the
// caller.
func BuildTreeFromLeaves(leaves []Hash, tags Tags) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	if err := tags.Validate(); err != nil {
		return nil, err
	}
	_, branchTagger := tags.hashers()
	return buildTree(tags, branchTagger, leaves), nil
}

func buildTree(tags Tags, branch *Tagger, leaves []Hash) *Tree {
	res := fold(branch, leaves, foldOptions{retain: true, track: -1})
	return &Tree{
		tags:      tags,
		nodes:     res.nodes,
		root:      res.rootRef,
		leafCount: len(leaves),
	}
}

// Root returns the commitment.
func (t *Tree) Root() Hash { return t.nodes[t.root].hash }

// RootRef returns the arena reference of the root node.
func (t *Tree) RootRef() Ref { return t.root }

// Tags returns the tags the tree was built with.
func (t *Tree) Tags() Tags { return t.tags }

// LeafCount returns the number of records committed.
func (t *Tree) LeafCount() int { return t.leafCount }

// NodeCount returns the number of distinct nodes in the arena.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// LeafHash returns the hash of the i'th leaf.
func (t *Tree) LeafHash(i int) (Hash, error) {
	if i < 0 || i >= t.leafCount {
		return Hash{}, fmt.Errorf("leaf %d out of range [0, %d)", i, t.leafCount)
	}
	return t.nodes[i].hash, nil
}

func (t *Tree) node(ref Ref) (node, bool) {
	if int64(ref) >= int64(len(t.nodes)) {
		return node{}, false
	}
	return t.nodes[ref], true
}

// NodeHash returns the hash stored at ref. It is false for NoRef or a ref
// outside the arena.
func (t *Tree) NodeHash(ref Ref) (Hash, bool) {
	n, ok := t.node(ref)
	return n.hash, ok
}

// Children returns the child refs of ref. Both are NoRef for a leaf. It is
// false for NoRef or a ref outside the arena.
func (t *Tree) Children(ref Ref) (Ref, Ref, bool) {
	n, ok := t.node(ref)
	if !ok {
		return NoRef, NoRef, false
	}
	return n.left, n.right, true
}

// IsLeaf reports whether ref is a node with no children.
func (t *Tree) IsLeaf(ref Ref) bool {
	n, ok := t.node(ref)
	return ok && n.isLeaf()
}
