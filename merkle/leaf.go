package merkle

import "strconv"

// Record is one account committed to by a root. Identity is the ID, but the
// commitment depends on the order of the records too.
type Record struct {
	ID      int64
	Balance uint64
}

// String renders the v1 leaf encoding, eg "(7,7777)".
func (r Record) String() string {
	return string(EncodeLeaf(r))
}

// EncodeLeaf returns the v1 leaf message for r: "(identifier,value)" in ASCII
// decimal with no whitespace.
func EncodeLeaf(r Record) []byte {
	b := make([]byte, 0, 2+20+1+20)
	b = append(b, '(')
	b = strconv.AppendInt(b, r.ID, 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, r.Balance, 10)
	b = append(b, ')')
	return b
}

// LeafHash returns the leaf hash of r under the leaf tag of tags.
func (tags Tags) LeafHash(r Record) Hash {
	return TaggedHash(tags.Leaf, EncodeLeaf(r))
}

// LeafHashes encodes and hashes records in order.
func LeafHashes(leafTagger *Tagger, records []Record) []Hash {
	leaves := make([]Hash, len(records))
	for i, r := range records {
		leaves[i] = leafTagger.Sum(EncodeLeaf(r))
	}
	return leaves
}

// IndexOf returns the position of the first record with the given id, or -1.
func IndexOf(records []Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
