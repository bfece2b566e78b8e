package merkle

// IncludedRoot folds nodeHash up through proof and returns the root it
// produces. Any Position other than SiblingLeft is treated as SiblingRight.
func IncludedRoot(branch *Tagger, nodeHash Hash, proof Proof) Hash {
	root := nodeHash
	for _, step := range proof {
		if step.Position == SiblingLeft {
			// Set `root` to `H(sibling || root)`
			root = branch.SumPair(step.Sibling, root)
		} else {
			// Set `root` to `H(root || sibling)`
			root = branch.SumPair(root, step.Sibling)
		}
	}
	return root
}

// VerifyProof returns true if the leaf hash of candidate, combined with proof,
// reproduces root. A wrong value, a tampered proof, a stale root or invalid
// tags all simply yield false.
func VerifyProof(proof Proof, candidate Record, root Hash, tags Tags) bool {
	if tags.Validate() != nil {
		return false
	}
	leafTagger, branchTagger := tags.hashers()
	return IncludedRoot(branchTagger, leafTagger.Sum(EncodeLeaf(candidate)), proof) == root
}
