package reserve

import (
	"fmt"
	"time"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/google/uuid"
)

// Commitment is the published statement of a reserve snapshot. It binds the
// root to the number of records and to the exact hashing scheme, so that a
// verifier can reproduce the root from the records without further context.
type Commitment struct {
	RecordCount uint64 `cbor:"1,keyasint"`
	// Root is detached before a signed commitment is published. Verifiers
	// recompute it from the records and re-attach it.
	Root []byte `cbor:"2,keyasint"`
	// Timestamp is the unix time (milliseconds) at which the snapshot was
	// built. Including it allows the same root to be re-committed.
	Timestamp  int64  `cbor:"3,keyasint"`
	SnapshotID string `cbor:"4,keyasint"`

	LeafTag         string `cbor:"5,keyasint"`
	BranchTag       string `cbor:"6,keyasint"`
	LegacySingleTag bool   `cbor:"7,keyasint,omitempty"`
	LeafEncoding    uint8  `cbor:"8,keyasint"`
}

// NewCommitment describes tree as of now.
func NewCommitment(tree *merkle.Tree, snapshotID uuid.UUID, now time.Time) Commitment {
	root := tree.Root()
	tags := tree.Tags()
	return Commitment{
		RecordCount:     uint64(tree.LeafCount()),
		Root:            root[:],
		Timestamp:       now.UnixMilli(),
		SnapshotID:      snapshotID.String(),
		LeafTag:         tags.Leaf,
		BranchTag:       tags.Branch,
		LegacySingleTag: tags.Legacy,
		LeafEncoding:    merkle.LeafEncodingV1,
	}
}

// Tags returns the hashing scheme the commitment was produced under.
func (c Commitment) Tags() merkle.Tags {
	if c.LegacySingleTag {
		return merkle.LegacySingleTag(c.LeafTag)
	}
	return merkle.Tags{Leaf: c.LeafTag, Branch: c.BranchTag}
}

// RootHash returns the committed root, which is absent on a commitment
// decoded from a published signature.
func (c Commitment) RootHash() (merkle.Hash, error) {
	h, err := merkle.HashFromBytes(c.Root)
	if err != nil {
		return merkle.Hash{}, fmt.Errorf("%w: got %d bytes", ErrCommitmentRoot, len(c.Root))
	}
	return h, nil
}

// WithRoot returns a copy of c carrying root.
func (c Commitment) WithRoot(root merkle.Hash) Commitment {
	c.Root = append([]byte(nil), root[:]...)
	return c
}

func NewCommitmentCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(), // unsigned int decodes to uint64
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}
