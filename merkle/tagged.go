package merkle

import (
	"crypto/sha256"
	"fmt"
)

// TaggedHash computes:
//
//	SHA256( SHA256(tag) || SHA256(tag) || msg )
func TaggedHash(tag string, msg []byte) Hash {
	return NewTagger(tag).Sum(msg)
}

// Tagger hashes messages under a single tag. The tag prefix is computed once.
type Tagger struct {
	tag    string
	prefix [2 * HashBytes]byte
}

func NewTagger(tag string) *Tagger {
	t := &Tagger{tag: tag}
	th := sha256.Sum256([]byte(tag))
	copy(t.prefix[:HashBytes], th[:])
	copy(t.prefix[HashBytes:], th[:])
	return t
}

// Tag returns the tag the hasher was created for.
func (t *Tagger) Tag() string { return t.tag }

// Sum returns the tagged hash of msg.
func (t *Tagger) Sum(msg []byte) Hash {
	h := sha256.New()
	_, _ = h.Write(t.prefix[:])
	_, _ = h.Write(msg)

	var out Hash
	h.Sum(out[:0])
	return out
}

// SumPair returns the tagged hash of left || right without building the
// concatenation.
func (t *Tagger) SumPair(left, right Hash) Hash {
	h := sha256.New()
	_, _ = h.Write(t.prefix[:])
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])

	var out Hash
	h.Sum(out[:0])
	return out
}

// Tags fixes the domain separation of a commitment. Together with the leaf
// encoding they form the implicit schema of a root; they are never negotiated
// per proof.
type Tags struct {
	Leaf   string
	Branch string

	// Legacy permits Leaf == Branch. Set only through LegacySingleTag.
	Legacy bool
}

// DefaultTags returns the canonical proof of reserve tags.
func DefaultTags() Tags {
	return Tags{Leaf: DefaultLeafTag, Branch: DefaultBranchTag}
}

// NewTags returns tags with distinct leaf and branch values.
func NewTags(leaf, branch string) (Tags, error) {
	tags := Tags{Leaf: leaf, Branch: branch}
	if err := tags.Validate(); err != nil {
		return Tags{}, err
	}
	return tags, nil
}

// LegacySingleTag returns the compatibility mode that hashes leaves and
// branches under the same tag. It offers weaker domain separation and exists
// only to reproduce roots produced that way.
func LegacySingleTag(tag string) Tags {
	return Tags{Leaf: tag, Branch: tag, Legacy: true}
}

// Validate rejects shared leaf/branch tags unless the legacy mode was chosen
// explicitly.
func (tags Tags) Validate() error {
	if tags.Leaf == tags.Branch && !tags.Legacy {
		return fmt.Errorf("%w: %q", ErrSharedTag, tags.Leaf)
	}
	return nil
}

// hashers returns the leaf and branch taggers for tags. When the tags are
// shared both results are the same Tagger.
func (tags Tags) hashers() (*Tagger, *Tagger) {
	leaf := NewTagger(tags.Leaf)
	if tags.Branch == tags.Leaf {
		return leaf, leaf
	}
	return leaf, NewTagger(tags.Branch)
}
