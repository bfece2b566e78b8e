package merkle

import (
	"encoding/hex"
	"fmt"
)

// String renders h as lowercase hex with no prefix or separators.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(HashBytes))
	hex.Encode(out, h[:])
	return out, nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// ParseHash decodes a 64 character hex string.
func ParseHash(s string) (Hash, error) {
	if hex.DecodedLen(len(s)) != HashBytes {
		return Hash{}, fmt.Errorf("%w: got %d hex chars", ErrBadHashSize, len(s))
	}
	var h Hash
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrBadHashHex, err)
	}
	return h, nil
}

// HashFromBytes copies b into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != HashBytes {
		return Hash{}, fmt.Errorf("%w: got %d bytes", ErrBadHashSize, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}
