package relayer

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"weft/engine/actors"
	"weft/engine/library"
)

func testWallet(t *testing.T) library.Wallet {
	key := strings.Repeat("01", 32)
	b, err := hex.DecodeString(key)
	require.NoError(t, err)
	_, pub := btcec.PrivKeyFromBytes(b)
	return library.Wallet{
		PrivateKey: key,
		Account:    hex.EncodeToString(schnorr.SerializePubKey(pub)),
	}
}

func serveRelayer(t *testing.T, handler http.HandlerFunc) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	conf := viper.New()
	conf.Set("relayerEndpoint", server.URL)
	actors.SetConfig(conf)
}

func testHops() []library.Hop {
	return []library.Hop{
		{Issuer: "alice", Src: "alice", Dest: "bob", Amount: library.NewAmount(30)},
		{Issuer: "bob", Src: "bob", Dest: "carol", Amount: library.NewAmount(30)},
	}
}

func TestSubmit(t *testing.T) {
	wallet := testWallet(t)
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transfer", r.URL.Path)
		var s submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&s))
		require.Equal(t, wallet.Account, s.Account)
		require.EqualValues(t, 7, s.Nonce)
		require.Equal(t, []library.Account{"alice", "bob"}, s.TokenOwners)
		require.Equal(t, []library.Account{"alice", "bob"}, s.Sources)
		require.Equal(t, []library.Account{"bob", "carol"}, s.Destinations)
		require.Equal(t, []string{"30", "30"}, s.Values)

		// the relayer rebuilds the digest from the unsigned payload and
		// verifies the schnorr signature against the originating account
		digest, err := payloadDigest(s)
		require.NoError(t, err)
		require.True(t, library.Verify(s.Account, digest, s.Signature))

		json.NewEncoder(w).Encode(submissionResponse{TxRef: "0xf00"})
	})
	txRef, err := Submit(testHops(), 7, wallet)
	require.NoError(t, err)
	require.Equal(t, "0xf00", txRef)
}

func TestSubmitRejection(t *testing.T) {
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(submissionResponse{Reason: "nonce already used"})
	})
	_, err := Submit(testHops(), 7, testWallet(t))
	require.Equal(t, library.ErrSettlementFailed, library.KindOf(err))
	require.Contains(t, err.Error(), "nonce already used")
}

func TestSubmitEmpty(t *testing.T) {
	_, err := Submit(nil, 1, testWallet(t))
	require.Equal(t, library.ErrInvalidOptions, library.KindOf(err))
}

func TestSubmitRespectsDoNotSubmit(t *testing.T) {
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("doNotSubmit is set, nothing should reach the relayer")
	})
	actors.MakeOrGetConfig().Set("doNotSubmit", true)
	txRef, err := Submit(testHops(), 7, testWallet(t))
	require.NoError(t, err)
	require.NotEmpty(t, txRef)
}

func TestNextNonce(t *testing.T) {
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/nonce", r.URL.Path)
		require.Equal(t, "alice", r.URL.Query().Get("account"))
		w.Write([]byte(`{"nonce": 41}`))
	})
	nonce, err := NextNonce("alice")
	require.NoError(t, err)
	require.EqualValues(t, 41, nonce)
}

func TestObserverBalanceOf(t *testing.T) {
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/balance", r.URL.Path)
		w.Write([]byte(`{"balance": "12.5"}`))
	})
	balance, err := Observer{}.BalanceOf("alice")
	require.NoError(t, err)
	require.Equal(t, "12.5", balance.String())
}

func TestSetTrustRange(t *testing.T) {
	_, err := SetTrust(testWallet(t), "bob", 101)
	require.Error(t, err)
	_, err = SetTrust(testWallet(t), "bob", -1)
	require.Error(t, err)
}

func TestRegistrationFlow(t *testing.T) {
	wallet := testWallet(t)
	serveRelayer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deploy":
			var d deployRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
			require.Equal(t, wallet.Account, d.Account)
			w.Write([]byte(`{"safeAddress": "0xsafe"}`))
		case "/register":
			var reg registration
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
			require.Equal(t, "0xsafe", reg.SafeAddress)
			digest := library.Sha256Sum(reg.Account + reg.SafeAddress + reg.Username + reg.Email)
			require.True(t, library.Verify(reg.Account, digest, reg.Signature))
			w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	safeAddress, err := PrepareDeploy(wallet, 3)
	require.NoError(t, err)
	require.Equal(t, "0xsafe", safeAddress)
	require.NoError(t, RegisterUser(wallet, "alice", "alice@example.org", safeAddress))
}
