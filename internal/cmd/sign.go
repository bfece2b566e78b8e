package cmd

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
	"github.com/veraison/go-cose"
)

var ErrSigningKey = errors.New("reservectl: signing key must be a PEM encoded P-256 private key")

func newSignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print a hex encoded COSE Sign1 commitment to the current records",
		Long: `Print a hex encoded COSE Sign1 commitment to the current records

The merkle root is removed from the published payload. Verifiers recompute it
from the records and the hashing scheme named in the commitment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath := cmd.Flag("key").Value.String()
			kid := cmd.Flag("kid").Value.String()
			subject := cmd.Flag("subject").Value.String()

			coseSigner, err := loadSigner(keyPath)
			if err != nil {
				return err
			}
			env, err := loadBuiltEnvironment(cmd)
			if err != nil {
				return err
			}
			c, err := env.prover.Commitment()
			if err != nil {
				return err
			}
			codec, err := reserve.NewCommitmentCodec()
			if err != nil {
				return err
			}
			if subject == "" {
				subject = env.conf.RecordsPath
				if env.conf.Store == reserve.StoreKindBlob {
					subject = env.conf.BlobPath
				}
			}
			signer := reserve.NewCommitmentSigner(env.conf.Issuer, codec)
			msg, err := signer.Sign1(coseSigner, kid, subject, c, nil)
			if err != nil {
				return err
			}
			env.log.Infof("signed snapshot %s for %s", c.SnapshotID, subject)
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(msg))
			return nil
		},
	}
	cmd.Flags().StringP("key", "k", "sign.pem", "Path to the PEM encoded P-256 signing key")
	cmd.Flags().String("kid", "reserve-1", "Key identifier placed in the protected header")
	cmd.Flags().String("subject", "", "Subject claim, defaults to the record store location")
	return cmd
}

func loadSigner(path string) (cose.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrSigningKey
	}

	var key *ecdsa.PrivateKey
	switch block.Type {
	case "EC PRIVATE KEY":
		key, err = x509.ParseECPrivateKey(block.Bytes)
	default:
		var parsed any
		parsed, err = x509.ParsePKCS8PrivateKey(block.Bytes)
		if err == nil {
			var ok bool
			if key, ok = parsed.(*ecdsa.PrivateKey); !ok {
				return nil, ErrSigningKey
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningKey, err)
	}
	if key.Curve.Params().Name != "P-256" {
		return nil, ErrSigningKey
	}
	return cose.NewSigner(cose.AlgorithmES256, key)
}
