package reserve

import (
	"testing"
	"time"

	"github.com/forestrie/go-reserve/merkle"
	"github.com/forestrie/go-reserve/reservetesting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSnapshotID = uuid.MustParse("0b4b8a9c-4f0e-4c5d-9d4e-7a8b5c6d7e8f")

func testCommitment(t *testing.T, n int, tags merkle.Tags) (*merkle.Tree, Commitment) {
	tree, err := merkle.BuildTree(reservetesting.CanonicalRecords(n), tags)
	require.NoError(t, err)
	return tree, NewCommitment(tree, testSnapshotID, time.UnixMilli(1700000000123))
}

func TestNewCommitment(t *testing.T) {
	tree, c := testCommitment(t, 8, merkle.DefaultTags())

	assert.Equal(t, uint64(8), c.RecordCount)
	assert.Equal(t, int64(1700000000123), c.Timestamp)
	assert.Equal(t, testSnapshotID.String(), c.SnapshotID)
	assert.Equal(t, uint8(merkle.LeafEncodingV1), c.LeafEncoding)
	assert.Equal(t, merkle.DefaultTags(), c.Tags())

	root, err := c.RootHash()
	require.NoError(t, err)
	assert.Equal(t, tree.Root(), root)
	assert.Equal(t, "b1231de33da17c23cebd80c104b88198e0914b0463d0e14db163605b904a7ba3", root.String())
}

func TestCommitmentLegacyTags(t *testing.T) {
	_, c := testCommitment(t, 3, merkle.LegacySingleTag("Bitcoin_Transaction"))
	assert.True(t, c.LegacySingleTag)
	assert.Equal(t, merkle.LegacySingleTag("Bitcoin_Transaction"), c.Tags())
}

func TestCommitmentCodecRoundTrip(t *testing.T) {
	codec, err := NewCommitmentCodec()
	require.NoError(t, err)
	_, c := testCommitment(t, 5, merkle.DefaultTags())

	data, err := codec.MarshalCBOR(c)
	require.NoError(t, err)

	var decoded Commitment
	require.NoError(t, codec.UnmarshalInto(data, &decoded))
	assert.Equal(t, c, decoded)

	again, err := codec.MarshalCBOR(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")
}

func TestCommitmentWithRootCopies(t *testing.T) {
	_, c := testCommitment(t, 2, merkle.DefaultTags())
	c.Root = nil
	_, err := c.RootHash()
	assert.ErrorIs(t, err, ErrCommitmentRoot)

	root := merkle.TaggedHash("x", nil)
	withRoot := c.WithRoot(root)
	root[0] ^= 0xff
	got, err := withRoot.RootHash()
	require.NoError(t, err)
	assert.NotEqual(t, root, got)
	assert.Nil(t, c.Root)
}

func TestCommitmentSigner_Sign1(t *testing.T) {
	type args struct {
		subject  string
		external []byte
	}
	tests := []struct {
		name string
		args args
	}{
		{name: "no external data", args: args{subject: "reserve/records.json"}},
		{name: "external data", args: args{subject: "reserve/records.json", external: []byte("epoch 7")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := reservetesting.NewTestSignerContext(t, "reserve attestation key 1")
			codec, err := NewCommitmentCodec()
			require.NoError(t, err)
			cs := NewCommitmentSigner("reserve.example.org", codec)

			tree, c := testCommitment(t, 8, merkle.DefaultTags())
			msg, err := cs.Sign1(sc.Signer, sc.KeyIdentifier, tt.args.subject, c, tt.args.external)
			require.NoError(t, err)

			signed, unverified, err := DecodeSignedCommitment(codec, msg)
			require.NoError(t, err)

			// the root is detached on publication
			assert.Empty(t, unverified.Root)
			assert.Equal(t, c.RecordCount, unverified.RecordCount)
			assert.Equal(t, c.SnapshotID, unverified.SnapshotID)

			issuer, subject := SignedClaims(signed)
			assert.Equal(t, "reserve.example.org", issuer)
			assert.Equal(t, tt.args.subject, subject)

			// a verifier that has not recomputed the root cannot verify
			err = VerifySignedCommitment(codec, sc.Verifier, signed, unverified, merkle.Hash{}, tt.args.external)
			assert.Error(t, err)

			// recompute the root from the records under the committed scheme
			root, err := merkle.ComputeRecordsRoot(reservetesting.CanonicalRecords(int(unverified.RecordCount)), unverified.Tags())
			require.NoError(t, err)
			require.Equal(t, tree.Root(), root)

			err = VerifySignedCommitment(codec, sc.Verifier, signed, unverified, root, tt.args.external)
			assert.NoError(t, err)

			other := reservetesting.NewTestSignerContext(t, "other")
			err = VerifySignedCommitment(codec, other.Verifier, signed, unverified, root, tt.args.external)
			assert.Error(t, err)

			err = VerifySignedCommitment(codec, sc.Verifier, signed, unverified, root, []byte("wrong"))
			assert.Error(t, err)
		})
	}
}

func TestDecodeSignedCommitmentMalformed(t *testing.T) {
	codec, err := NewCommitmentCodec()
	require.NoError(t, err)

	_, _, err = DecodeSignedCommitment(codec, []byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrSignedCommitment)
}
