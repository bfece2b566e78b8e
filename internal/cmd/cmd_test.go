package cmd

import (
	"bytes"
	"context"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/forestrie/go-reserve/internal"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/forestrie/go-reserve/reserve"
	"github.com/forestrie/go-reserve/reservetesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const canonical8Root = "b1231de33da17c23cebd80c104b88198e0914b0463d0e14db163605b904a7ba3"

// newCLIContext writes n canonical records and a config naming them.
func newCLIContext(t *testing.T, n int) (reservetesting.TestContext, string) {
	tc := reservetesting.NewTestContext(t, reservetesting.TestConfig{
		TestLabelPrefix: t.Name(), RecordCount: n})
	conf := reserve.DefaultConfig(reservetesting.RecordsFileName)
	conf.LogLevel = "ERROR"
	confPath := filepath.Join(tc.Dir, defaultConfigFile)
	require.NoError(t, conf.Save(confPath))
	return tc, confPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "reservectl v"+internal.Version+"\n", out)
}

func TestRootCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	out, err := execute(t, "root", "--config", confPath)
	require.NoError(t, err)

	var view reserve.RootView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, canonical8Root, view.MerkleRoot.String())
}

func TestProofCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	out, err := execute(t, "proof", "7", "--config", confPath)
	require.NoError(t, err)

	var view reserve.ProofView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, uint64(7777), view.UserBalance)
	assert.Len(t, view.MerkleProof, 3)
	assert.Equal(t, canonical8Root, view.MerkleRoot.String())
	assert.True(t, merkle.VerifyProof(view.Proof(), merkle.Record{ID: 7, Balance: 7777}, view.MerkleRoot, merkle.DefaultTags()))
	assert.False(t, merkle.VerifyProof(view.Proof(), merkle.Record{ID: 7, Balance: 9999}, view.MerkleRoot, merkle.DefaultTags()))

	_, err = execute(t, "proof", "99", "--config", confPath)
	assert.ErrorIs(t, err, merkle.ErrRecordNotFound)

	_, err = execute(t, "proof", "seven", "--config", confPath)
	assert.ErrorIs(t, err, reserve.ErrBadRecordField)
}

func TestVerifyCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	tests := []struct {
		args    []string
		want    bool
		wantErr error
	}{
		{args: []string{"7", "7777"}, want: true},
		{args: []string{"7", "9999"}, want: false},
		{args: []string{"1", "1111"}, want: true},
		{args: []string{"99", "1"}, wantErr: merkle.ErrRecordNotFound},
		{args: []string{"7", "-1"}, wantErr: reserve.ErrNegativeBalance},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, ","), func(t *testing.T) {
			out, err := execute(t, append([]string{"verify", "--config", confPath, "--"}, tt.args...)...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var view reserve.VerifyView
			require.NoError(t, json.Unmarshal([]byte(out), &view))
			assert.Equal(t, tt.want, view.IsValid)
		})
	}
}

func TestAddCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	out, err := execute(t, "add", "9", "9999", "--config", confPath)
	require.NoError(t, err)
	var view reserve.RootView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.NotEqual(t, canonical8Root, view.MerkleRoot.String())

	want, err := merkle.ComputeRecordsRoot(
		append(reservetesting.CanonicalRecords(8), merkle.Record{ID: 9, Balance: 9999}), merkle.DefaultTags())
	require.NoError(t, err)
	assert.Equal(t, want, view.MerkleRoot)

	out, err = execute(t, "verify", "9", "9999", "--config", confPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid":true}`, out)

	_, err = execute(t, "add", "9", "1", "--config", confPath)
	_, dup := reserve.IsDuplicateRecord(err)
	assert.True(t, dup)
}

func TestReceiptCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 6)

	out, err := execute(t, "receipt", "4", "--config", confPath)
	require.NoError(t, err)
	data, err := hex.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)

	receipt, err := reserve.DecodeReceipt(data)
	require.NoError(t, err)
	assert.Equal(t, merkle.Record{ID: 4, Balance: 4444}, receipt.Record())
	assert.True(t, reserve.VerifyReceipt(receipt, merkle.DefaultTags()))
}

func TestSignCommand(t *testing.T) {
	tc, confPath := newCLIContext(t, 8)

	sc := reservetesting.NewTestSignerContext(t, "test-key")
	der, err := x509.MarshalECPrivateKey(sc.Key)
	require.NoError(t, err)
	keyPath := tc.WriteFile("sign.pem", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))

	out, err := execute(t, "sign", "--config", confPath, "--key", keyPath, "--kid", sc.KeyIdentifier, "--subject", "reserve/test")
	require.NoError(t, err)
	msg, err := hex.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)

	codec, err := reserve.NewCommitmentCodec()
	require.NoError(t, err)
	signed, unverified, err := reserve.DecodeSignedCommitment(codec, msg)
	require.NoError(t, err)
	issuer, subject := reserve.SignedClaims(signed)
	assert.Equal(t, reserve.DefaultIssuer, issuer)
	assert.Equal(t, "reserve/test", subject)

	root, err := merkle.ComputeRecordsRoot(reservetesting.CanonicalRecords(int(unverified.RecordCount)), unverified.Tags())
	require.NoError(t, err)
	assert.Equal(t, canonical8Root, root.String())

	assert.NoError(t, reserve.VerifySignedCommitment(codec, sc.Verifier, signed, unverified, root, nil))
}

func TestSignCommandBadKey(t *testing.T) {
	tc, confPath := newCLIContext(t, 2)
	keyPath := tc.WriteFile("sign.pem", []byte("not a key"))

	_, err := execute(t, "sign", "--config", confPath, "--key", keyPath)
	assert.ErrorIs(t, err, ErrSigningKey)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, defaultConfigFile)

	conf, err := reserve.LoadConfig(filepath.Join(dir, defaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, defaultRecordsFile), conf.RecordsPath)
	data, err := os.ReadFile(conf.RecordsPath)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	_, err = execute(t, "init", "--dir", dir)
	assert.ErrorIs(t, err, fs.ErrExist)

	_, err = execute(t, "root", "--config", filepath.Join(dir, defaultConfigFile))
	assert.ErrorIs(t, err, merkle.ErrEmptyInput)
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "root", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestWatchCommand(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"watch", "--config", confPath, "--interval", "10ms"})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)
	require.NoError(t, root.ExecuteContext(ctx))

	dec := json.NewDecoder(&out)
	var view reserve.RootView
	require.NoError(t, dec.Decode(&view))
	assert.Equal(t, canonical8Root, view.MerkleRoot.String())
	assert.False(t, dec.More(), "unchanged records print the root once")
}

func TestWatchCommandInterval(t *testing.T) {
	_, confPath := newCLIContext(t, 8)

	tests := []struct {
		name     string
		interval string
	}{
		{"zero", "--interval=0"},
		{"negative", "--interval=-1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := NewRootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"watch", "--config", confPath, tt.interval})

			err := root.ExecuteContext(context.Background())
			assert.ErrorIs(t, err, reserve.ErrWatchInterval)
			assert.Empty(t, out.String())
		})
	}
}
