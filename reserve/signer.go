package reserve

import (
	"crypto/rand"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/veraison/go-cose"
)

const (
	// HeaderLabelCWTClaims is the COSE header label for CWT claims (RFC 9597).
	HeaderLabelCWTClaims int64 = 15

	cwtClaimIssuer  int64 = 1
	cwtClaimSubject int64 = 2
)

// CommitmentSigner produces COSE Sign1 messages over reserve commitments.
type CommitmentSigner struct {
	issuer    string
	cborCodec dtcbor.CBORCodec
}

func NewCommitmentSigner(issuer string, cborCodec dtcbor.CBORCodec) CommitmentSigner {
	return CommitmentSigner{
		issuer:    issuer,
		cborCodec: cborCodec,
	}
}

func (cs CommitmentSigner) Issuer() string { return cs.issuer }

// Sign1 signs c and returns the encoded message with the root removed from
// the payload. Verifiers must recompute the root from the records, see
// VerifySignedCommitment.
func (cs CommitmentSigner) Sign1(
	coseSigner cose.Signer, keyIdentifier string, subject string, c Commitment, external []byte,
) ([]byte, error) {
	payload, err := cs.cborCodec.MarshalCBOR(c)
	if err != nil {
		return nil, err
	}

	coseHeaders := cose.Headers{
		Protected: cose.ProtectedHeader{
			cose.HeaderLabelAlgorithm: coseSigner.Algorithm(),
			cose.HeaderLabelKeyID:     []byte(keyIdentifier),
			HeaderLabelCWTClaims: map[int64]any{
				cwtClaimIssuer:  cs.issuer,
				cwtClaimSubject: subject,
			},
		},
	}

	msg := cose.Sign1Message{
		Headers: coseHeaders,
		Payload: payload,
	}
	err = msg.Sign(rand.Reader, external, coseSigner)
	if err != nil {
		return nil, err
	}

	c.Root = nil
	payload, err = cs.cborCodec.MarshalCBOR(c)
	if err != nil {
		return nil, err
	}
	msg.Payload = payload

	return msg.MarshalCBOR()
}
