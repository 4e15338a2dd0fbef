package library

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

func Sha256Sum(data interface{}) Sha256 {
	var b []byte
	switch d := data.(type) {
	case string:
		b = []byte(d)
	case []byte:
		b = d
	default:
		LogCLI("attempted to hash non-string or non-[]byte", 0)
	}
	h := sha256.New()
	h.Write(b)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Sign produces a schnorr signature over the given sha256 digest with the
// hex-encoded private key.
func Sign(privateKey string, digest Sha256) (string, error) {
	keyb, err := hex.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("error decoding key from hex: %s", err.Error())
	}
	digestb, err := hex.DecodeString(digest)
	if err != nil {
		return "", fmt.Errorf("error decoding digest from hex: %s", err.Error())
	}
	sk, _ := btcec.PrivKeyFromBytes(keyb)
	sig, err := schnorr.Sign(sk, digestb)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sig.Serialize()), nil
}

// Verify checks a schnorr signature over a sha256 digest against an account
// (hex-encoded x-only pubkey).
func Verify(account Account, digest Sha256, signature string) bool {
	pkb, err := hex.DecodeString(account)
	if err != nil {
		return false
	}
	pk, err := schnorr.ParsePubKey(pkb)
	if err != nil {
		return false
	}
	digestb, err := hex.DecodeString(digest)
	if err != nil {
		return false
	}
	sigb, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(sigb)
	if err != nil {
		return false
	}
	return sig.Verify(digestb, pk)
}
