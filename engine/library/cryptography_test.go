package library

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	key := strings.Repeat("02", 32)
	b, err := hex.DecodeString(key)
	require.NoError(t, err)
	_, pub := btcec.PrivKeyFromBytes(b)
	account := hex.EncodeToString(schnorr.SerializePubKey(pub))

	digest := Sha256Sum("a settlement payload")
	signature, err := Sign(key, digest)
	require.NoError(t, err)
	require.True(t, Verify(account, digest, signature))

	// a different digest must not verify
	require.False(t, Verify(account, Sha256Sum("tampered"), signature))
	// garbage never verifies
	require.False(t, Verify("not hex", digest, signature))
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("12.5")
	require.NoError(t, err)
	require.Equal(t, "12.5", a.String())

	_, err = ParseAmount("-1")
	require.Error(t, err)
	_, err = ParseAmount("twelve")
	require.Error(t, err)
}
