package graphindex

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"weft/engine/actors"
	"weft/engine/library"
)

func serveGraph(t *testing.T, status int, body string) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graph", r.URL.Path)
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	conf := viper.New()
	conf.Set("graphEndpoint", server.URL)
	actors.SetConfig(conf)
}

func TestFetchGraph(t *testing.T) {
	serveGraph(t, http.StatusOK, `{
		"issuers": ["alice", "bob"],
		"organizations": ["acme"],
		"edges": [
			{"truster": "bob", "issuer": "alice", "limitPercent": 50},
			{"truster": "acme", "issuer": "bob", "limitPercent": 100}
		],
		"balances": [
			{"issuer": "alice", "holder": "alice", "amount": "100"},
			{"issuer": "bob", "holder": "bob", "amount": "42.5"}
		]
	}`)
	snapshot, err := FetchGraph("alice")
	require.NoError(t, err)
	require.True(t, snapshot.Issuers["alice"])
	require.True(t, snapshot.Organizations["acme"])
	require.EqualValues(t, 50, snapshot.Trust("bob", "alice"))
	require.EqualValues(t, 100, snapshot.Trust("acme", "bob"))
	require.True(t, snapshot.Balance("alice", "alice").Equal(library.NewAmount(100)))
	require.Equal(t, "42.5", snapshot.Balance("bob", "bob").String())
}

func TestFetchGraphSkipsMalformedRows(t *testing.T) {
	serveGraph(t, http.StatusOK, `{
		"issuers": ["alice"],
		"organizations": ["alice"],
		"edges": [
			{"truster": "alice", "issuer": "alice", "limitPercent": 10},
			{"truster": "bob", "issuer": "alice", "limitPercent": 50}
		],
		"balances": [
			{"issuer": "alice", "holder": "alice", "amount": "-5"},
			{"issuer": "mallory", "holder": "bob", "amount": "10"},
			{"issuer": "alice", "holder": "bob", "amount": "7"}
		]
	}`)
	snapshot, err := FetchGraph("alice")
	require.NoError(t, err)
	// the bad rows are dropped, the good ones survive
	require.False(t, snapshot.Organizations["alice"])
	require.EqualValues(t, 100, snapshot.Trust("alice", "alice"))
	require.EqualValues(t, 50, snapshot.Trust("bob", "alice"))
	require.True(t, snapshot.Balance("alice", "alice").IsZero())
	require.True(t, snapshot.Balance("alice", "bob").Equal(library.NewAmount(7)))
	require.True(t, snapshot.Balance("mallory", "bob").IsZero())
}

func TestFetchGraphErrors(t *testing.T) {
	serveGraph(t, http.StatusInternalServerError, "")
	_, err := FetchGraph("alice")
	require.Error(t, err)

	serveGraph(t, http.StatusOK, "not json")
	_, err = FetchGraph("alice")
	require.Error(t, err)
}
