package graphindex

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"weft/engine/actors"
	"weft/engine/library"
	"weft/state/trustgraph"
)

// The graph index is eventually consistent, a snapshot fetched here can lag
// the ledger. Stale data surfaces later as a pathfinding miss or a rejected
// settlement, never as corrupted local state.

type wireGraph struct {
	Issuers       []library.Account `json:"issuers"`
	Organizations []library.Account `json:"organizations"`
	Edges         []wireEdge        `json:"edges"`
	Balances      []wireBalance     `json:"balances"`
}

type wireEdge struct {
	Truster      library.Account `json:"truster"`
	Issuer       library.Account `json:"issuer"`
	LimitPercent int64           `json:"limitPercent"`
}

type wireBalance struct {
	Issuer library.Account `json:"issuer"`
	Holder library.Account `json:"holder"`
	Amount string          `json:"amount"`
}

// FetchGraph pulls the trust neighbourhood of the given account from the
// graph index and rebuilds it as a Snapshot. Rows the index serves that would
// break a graph invariant are dropped with a warning rather than failing the
// whole fetch.
func FetchGraph(account library.Account) (trustgraph.Snapshot, error) {
	sane := library.ValidateSaneExecutionTime()
	defer sane()
	endpoint := actors.MakeOrGetConfig().GetString("graphEndpoint")
	resp, err := http.Get(endpoint + "/graph?account=" + url.QueryEscape(account))
	if err != nil {
		return trustgraph.Snapshot{}, fmt.Errorf("fetching graph for %s: %s", account, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return trustgraph.Snapshot{}, fmt.Errorf("graph index returned %d for %s", resp.StatusCode, account)
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return trustgraph.Snapshot{}, fmt.Errorf("reading graph response for %s: %s", account, err.Error())
	}
	var wire wireGraph
	err = json.Unmarshal(body, &wire)
	if err != nil {
		return trustgraph.Snapshot{}, fmt.Errorf("decoding graph response for %s: %s", account, err.Error())
	}
	return buildSnapshot(wire), nil
}

func buildSnapshot(wire wireGraph) trustgraph.Snapshot {
	snapshot := trustgraph.NewSnapshot()
	for _, issuer := range wire.Issuers {
		if err := snapshot.Issue(issuer); err != nil {
			library.LogCLI(fmt.Sprintf("skipping issuer row %s: %s", issuer, err.Error()), 2)
		}
	}
	for _, org := range wire.Organizations {
		if err := snapshot.SetOrganization(org); err != nil {
			library.LogCLI(fmt.Sprintf("skipping organization row %s: %s", org, err.Error()), 2)
		}
	}
	for _, e := range wire.Edges {
		if err := snapshot.SetTrust(e.Truster, e.Issuer, e.LimitPercent); err != nil {
			library.LogCLI(fmt.Sprintf("skipping trust row %s->%s: %s", e.Truster, e.Issuer, err.Error()), 2)
		}
	}
	for _, b := range wire.Balances {
		amount, err := library.ParseAmount(b.Amount)
		if err != nil {
			library.LogCLI(fmt.Sprintf("skipping balance row for %s held by %s: %s", b.Issuer, b.Holder, err.Error()), 2)
			continue
		}
		if err := snapshot.SetBalance(b.Issuer, b.Holder, amount); err != nil {
			library.LogCLI(fmt.Sprintf("skipping balance row for %s held by %s: %s", b.Issuer, b.Holder, err.Error()), 2)
		}
	}
	return snapshot
}
