package merkle

// ComputeRoot leaf hashes already encoded messages and folds them to a root
// without retaining any structure.
func ComputeRoot(messages [][]byte, tags Tags) (Hash, error) {
	if len(messages) == 0 {
		return Hash{}, ErrEmptyInput
	}
	if err := tags.Validate(); err != nil {
		return Hash{}, err
	}

	leafTagger, branchTagger := tags.hashers()
	leaves := make([]Hash, len(messages))
	for i, m := range messages {
		leaves[i] = leafTagger.Sum(m)
	}
	return fold(branchTagger, leaves, foldOptions{track: -1}).root, nil
}

// ComputeRecordsRoot is ComputeRoot over the v1 encoding of records.
func ComputeRecordsRoot(records []Record, tags Tags) (Hash, error) {
	messages := make([][]byte, len(records))
	for i, r := range records {
		messages[i] = EncodeLeaf(r)
	}
	return ComputeRoot(messages, tags)
}
