package merkle

/*

# Tagged hash Merkle commitments for proof of reserve

This package commits an ordered list of account records (identifier, balance) to
a single 32 byte root and produces and verifies membership proofs against that
root.

The package is a set of functional primitives:

- small, composable functions
- explicit byte layouts
- index arithmetic where possible
- no I/O and no logging, callers own both

## Tagged hashing

Every hash is domain separated by a tag, in the style of BIP 340:

	TaggedHash(tag, msg) = SHA256( SHA256(tag) || SHA256(tag) || msg )

Leaves are hashed under the leaf tag and branches under a distinct branch tag,
so a leaf can never be presented as a branch (or vice versa). A construction
that uses one tag for both is weaker and is only available through
LegacySingleTag.

## Leaf encoding (v1)

A record is encoded as the ASCII text `(identifier,value)` with decimal numbers
and no whitespace, eg `(7,7777)`. Anyone recomputing a leaf hash must reproduce
these bytes exactly. Changing the encoding invalidates every issued proof, so it
is versioned (LeafEncodingV1).

## Folding

Levels are folded left to right. When a level has an odd width the last hash is
paired with itself:

	2            R
	           /   \
	1        A       B
	        / \     / \
	0      a   b   c   c   <- c duplicated

This duplicate-last rule is part of the commitment and is preserved as is.

There is exactly one fold routine. It can optionally

- retain every computed node in an arena (the materialized Tree), and
- track one leaf index through the levels, collecting the proof for it.

Both proof strategies (index tracked fold and tree search) therefore see the
same pairing and produce identical proofs.

## Proofs

A Proof is ordered leaf -> root. Each step carries the sibling hash and its
position relative to the node being proven:

	SiblingLeft  (0): parent = H_branch(sibling || current)
	SiblingRight (1): parent = H_branch(current || sibling)

Verification failure is a normal `false` result, never an error.

## Immutability

A Tree is never modified after BuildTree returns. Any change to the record set
invalidates the tree and every proof issued from it. Rebuild and replace the
whole tree, do not patch nodes.

*/
