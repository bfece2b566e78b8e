package reservetesting

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/veraison/go-cose"
)

func TestGenerateECKey(t *testing.T, curve elliptic.Curve) *ecdsa.PrivateKey {
	privateKey, err := ecdsa.GenerateKey(curve, rand.Reader)
	require.NoError(t, err)
	return privateKey
}

// TestSignerContext holds a P-256 key and the COSE signer and verifier for it.
type TestSignerContext struct {
	Key           *ecdsa.PrivateKey
	KeyIdentifier string
	Signer        cose.Signer
	Verifier      cose.Verifier
}

func NewTestSignerContext(t *testing.T, keyIdentifier string) *TestSignerContext {
	key := TestGenerateECKey(t, elliptic.P256())

	signer, err := cose.NewSigner(cose.AlgorithmES256, key)
	require.NoError(t, err)
	verifier, err := cose.NewVerifier(cose.AlgorithmES256, &key.PublicKey)
	require.NoError(t, err)

	return &TestSignerContext{
		Key:           key,
		KeyIdentifier: keyIdentifier,
		Signer:        signer,
		Verifier:      verifier,
	}
}
