package reserve

import (
	"fmt"

	"github.com/forestrie/go-reserve/merkle"
	"github.com/fxamacker/cbor/v2"
)

// ReceiptInclusionProof is the proof of a single record, ordered from the
// leaf towards the root. Positions[i] says which side Path[i] sits on.
type ReceiptInclusionProof struct {
	Index     uint64   `cbor:"1,keyasint"`
	Path      [][]byte `cbor:"2,keyasint"`
	Positions []uint8  `cbor:"3,keyasint"`
}

// Receipt is a self contained inclusion statement for one record. It can be
// handed to the record owner and verified without access to the record store.
type Receipt struct {
	RecordID   int64                 `cbor:"1,keyasint"`
	Balance    uint64                `cbor:"2,keyasint"`
	Root       []byte                `cbor:"3,keyasint"`
	SnapshotID string                `cbor:"4,keyasint,omitempty"`
	Inclusion  ReceiptInclusionProof `cbor:"5,keyasint"`
}

// NewReceipt bundles a proof response into a receipt.
func NewReceipt(resp ProofResponse, snapshotID string) Receipt {
	inclusion := ReceiptInclusionProof{
		Index:     resp.LeafIndex,
		Path:      make([][]byte, len(resp.Steps)),
		Positions: make([]uint8, len(resp.Steps)),
	}
	for i, step := range resp.Steps {
		sibling := step.Sibling
		inclusion.Path[i] = append([]byte(nil), sibling[:]...)
		inclusion.Positions[i] = uint8(step.Position)
	}
	return Receipt{
		RecordID:   resp.RecordID,
		Balance:    resp.Balance,
		Root:       append([]byte(nil), resp.Root[:]...),
		SnapshotID: snapshotID,
		Inclusion:  inclusion,
	}
}

func EncodeReceipt(r Receipt) ([]byte, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return em.Marshal(r)
}

// DecodeReceipt decodes and shape checks a receipt. It does not verify it.
func DecodeReceipt(data []byte) (Receipt, error) {
	var r Receipt
	if err := cbor.Unmarshal(data, &r); err != nil {
		return Receipt{}, fmt.Errorf("%w: %v", ErrReceiptMalformed, err)
	}
	if len(r.Root) != merkle.HashBytes {
		return Receipt{}, fmt.Errorf("%w: root is %d bytes", ErrReceiptMalformed, len(r.Root))
	}
	if len(r.Inclusion.Path) != len(r.Inclusion.Positions) {
		return Receipt{}, fmt.Errorf(
			"%w: %d path entries but %d positions",
			ErrReceiptMalformed, len(r.Inclusion.Path), len(r.Inclusion.Positions))
	}
	for i, p := range r.Inclusion.Path {
		if len(p) != merkle.HashBytes {
			return Receipt{}, fmt.Errorf("%w: path entry %d is %d bytes", ErrReceiptMalformed, i, len(p))
		}
	}
	return r, nil
}

// Record returns the record the receipt claims is included.
func (r Receipt) Record() merkle.Record {
	return merkle.Record{ID: r.RecordID, Balance: r.Balance}
}

// Proof returns the inclusion path as a merkle.Proof.
func (r Receipt) Proof() (merkle.Proof, error) {
	if len(r.Inclusion.Path) != len(r.Inclusion.Positions) {
		return nil, ErrReceiptMalformed
	}
	proof := make(merkle.Proof, len(r.Inclusion.Path))
	for i, p := range r.Inclusion.Path {
		h, err := merkle.HashFromBytes(p)
		if err != nil {
			return nil, fmt.Errorf("%w: path entry %d: %v", ErrReceiptMalformed, i, err)
		}
		proof[i] = merkle.ProofStep{Position: merkle.Position(r.Inclusion.Positions[i]), Sibling: h}
	}
	return proof, nil
}

// VerifyReceipt reports whether the receipt's proof reproduces its root under
// tags. A malformed receipt does not verify.
func VerifyReceipt(r Receipt, tags merkle.Tags) bool {
	root, err := merkle.HashFromBytes(r.Root)
	if err != nil {
		return false
	}
	proof, err := r.Proof()
	if err != nil {
		return false
	}
	return merkle.VerifyProof(proof, r.Record(), root, tags)
}
