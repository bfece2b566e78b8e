package reserve

import (
	"fmt"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/veraison/go-cose"
)

// DecodeSignedCommitment decodes the commitment carried by a signed message.
// The returned commitment has no root and will not verify as is.
func DecodeSignedCommitment(
	codec dtcbor.CBORCodec, msg []byte,
) (*cose.Sign1Message, Commitment, error) {
	var signed cose.Sign1Message
	if err := signed.UnmarshalCBOR(msg); err != nil {
		return nil, Commitment{}, fmt.Errorf("%w: %v", ErrSignedCommitment, err)
	}

	var unverified Commitment
	if err := codec.UnmarshalInto(signed.Payload, &unverified); err != nil {
		return nil, Commitment{}, fmt.Errorf("%w: payload: %v", ErrSignedCommitment, err)
	}
	return &signed, unverified, nil
}

// VerifySignedCommitment re-attaches root to the decoded commitment and checks
// the signature over the result.
//
// Verification is a three step process:
//  1. Use DecodeSignedCommitment to obtain the commitment from the message.
//  2. Recompute the root from the records using Commitment.Tags.
//  3. Call this function with the recomputed root.
func VerifySignedCommitment(
	codec dtcbor.CBORCodec, verifier cose.Verifier,
	signed *cose.Sign1Message, unverified Commitment, root merkle.Hash, external []byte,
) error {
	var err error
	signed.Payload, err = codec.MarshalCBOR(unverified.WithRoot(root))
	if err != nil {
		return err
	}
	return signed.Verify(external, verifier)
}

// SignedClaims returns the issuer and subject from the CWT claims header, if
// present.
func SignedClaims(signed *cose.Sign1Message) (issuer string, subject string) {
	raw, ok := signed.Headers.Protected[HeaderLabelCWTClaims]
	if !ok {
		return "", ""
	}
	claims, ok := raw.(map[any]any)
	if !ok {
		return "", ""
	}
	for k, v := range claims {
		s, _ := v.(string)
		switch claimLabel(k) {
		case cwtClaimIssuer:
			issuer = s
		case cwtClaimSubject:
			subject = s
		}
	}
	return issuer, subject
}

func claimLabel(k any) int64 {
	switch v := k.(type) {
	case int64:
		return v
	case uint64:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}
