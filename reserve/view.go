package reserve

import "github.com/forestrie/go-reserve/merkle"

// The JSON views below keep the response shapes record owners already
// consume. Hashes render as lowercase hex.

type RootView struct {
	MerkleRoot merkle.Hash `json:"merkleRoot"`
}

type ProofEntry struct {
	Hash     merkle.Hash     `json:"hash"`
	Position merkle.Position `json:"position"`
}

type ProofView struct {
	UserBalance uint64       `json:"userBalance"`
	MerkleProof []ProofEntry `json:"merkleProof"`
	MerkleRoot  merkle.Hash  `json:"merkleRoot"`
}

type VerifyView struct {
	IsValid bool `json:"isValid"`
}

func (c Commitment) View() (RootView, error) {
	root, err := c.RootHash()
	if err != nil {
		return RootView{}, err
	}
	return RootView{MerkleRoot: root}, nil
}

func (r ProofResponse) View() ProofView {
	entries := make([]ProofEntry, len(r.Steps))
	for i, step := range r.Steps {
		entries[i] = ProofEntry{Hash: step.Sibling, Position: step.Position}
	}
	return ProofView{
		UserBalance: r.Balance,
		MerkleProof: entries,
		MerkleRoot:  r.Root,
	}
}

// Proof converts the entries back into a merkle.Proof.
func (v ProofView) Proof() merkle.Proof {
	proof := make(merkle.Proof, len(v.MerkleProof))
	for i, e := range v.MerkleProof {
		proof[i] = merkle.ProofStep{Position: e.Position, Sibling: e.Hash}
	}
	return proof
}
