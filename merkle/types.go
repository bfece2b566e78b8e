package merkle

import "errors"

// HashBytes is the fixed width of every hash produced by this package.
const HashBytes = 32

// Hash is a tagged SHA-256 digest. Only byte equality is meaningful.
type Hash [HashBytes]byte

// Ref is an index into the node arena of a Tree.
type Ref uint32

const NoRef = ^Ref(0)

// Position says on which side of the proven node a proof sibling sits.
type Position uint8

const (
	SiblingLeft  Position = 0
	SiblingRight Position = 1
)

// LeafEncodingV1 identifies the "(identifier,value)" leaf encoding.
const LeafEncodingV1 = 1

// Default domain separation tags for proof of reserve commitments.
const (
	DefaultLeafTag   = "ProofOfReserve_Leaf"
	DefaultBranchTag = "ProofOfReserve_Branch"
)

var (
	ErrEmptyInput     = errors.New("merkle: nothing to commit, the input is empty")
	ErrRecordNotFound = errors.New("merkle: record not found")
	ErrSharedTag      = errors.New("merkle: leaf and branch tags must differ outside legacy mode")
	ErrBadHashSize    = errors.New("merkle: hash must be 32 bytes")
	ErrBadHashHex     = errors.New("merkle: hash is not valid hex")
)
