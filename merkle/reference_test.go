package merkle

import (
	"crypto/sha256"
	"testing"
)

// refTaggedHash builds the tagged hash preimage explicitly, independent of
// Tagger.
func refTaggedHash(tag string, msg []byte) []byte {
	th := sha256.Sum256([]byte(tag))
	preimage := make([]byte, 0, 2*HashBytes+len(msg))
	preimage = append(preimage, th[:]...)
	preimage = append(preimage, th[:]...)
	preimage = append(preimage, msg...)
	sum := sha256.Sum256(preimage)
	return sum[:]
}

// refRoot folds the messages the long way round, concatenating byte slices
// level by level. It shares no code with fold.
func refRoot(t *testing.T, messages [][]byte, leafTag, branchTag string) Hash {
	t.Helper()
	var nodes [][]byte
	for _, m := range messages {
		nodes = append(nodes, refTaggedHash(leafTag, m))
	}
	for len(nodes) > 1 {
		if len(nodes)%2 != 0 {
			nodes = append(nodes, nodes[len(nodes)-1])
		}
		var parents [][]byte
		for i := 0; i < len(nodes); i += 2 {
			concat := append(append([]byte{}, nodes[i]...), nodes[i+1]...)
			parents = append(parents, refTaggedHash(branchTag, concat))
		}
		nodes = parents
	}
	h, err := HashFromBytes(nodes[0])
	if err != nil {
		t.Fatalf("reference root: %v", err)
	}
	return h
}

// canonicalRecords returns (1,1111) .. (n,n*1111).
func canonicalRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		id := int64(i + 1)
		records[i] = Record{ID: id, Balance: uint64(id) * 1111}
	}
	return records
}

func encodeAll(records []Record) [][]byte {
	messages := make([][]byte, len(records))
	for i, r := range records {
		messages[i] = EncodeLeaf(r)
	}
	return messages
}

func mustParseHash(t *testing.T, s string) Hash {
	t.Helper()
	h, err := ParseHash(s)
	if err != nil {
		t.Fatalf("bad test vector %q: %v", s, err)
	}
	return h
}
