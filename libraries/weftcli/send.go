package weftcli

import (
	"context"
	"fmt"

	"weft/engine/actors"
	"weft/engine/library"
	"weft/messaging/graphindex"
	"weft/messaging/relayer"
	"weft/state/pathfinder"
	"weft/state/settlement"
	"weft/state/trustgraph"
)

// runSend is the full settlement flow: fetch the graph, find a path, prove it
// against a local simulation, then queue, fund, and submit under a relayer
// nonce. Any failure after enqueueing abandons the ticket so later
// settlements for this account are not blocked.
func runSend(to library.Account, value library.Amount) error {
	wallet := actors.MyWallet()
	snapshot, err := graphindex.FetchGraph(wallet.Account)
	if err != nil {
		return err
	}
	hops, err := pathfinder.FindPath(pathfinder.Request{From: wallet.Account, To: to, Value: value}, snapshot)
	if err != nil {
		return err
	}
	_, result, err := trustgraph.Settle(snapshot, wallet.Account, hops)
	if err != nil {
		return err
	}
	coordinator := settlement.NewCoordinator()
	ticket := coordinator.Enqueue(wallet.Account)
	err = coordinator.AwaitFunding(context.Background(), ticket, value, relayer.Observer{})
	if err != nil {
		coordinator.Fail(ticket)
		return err
	}
	nonce, err := relayer.NextNonce(wallet.Account)
	if err != nil {
		coordinator.Fail(ticket)
		return err
	}
	if err = coordinator.Lock(ticket, nonce); err != nil {
		coordinator.Fail(ticket)
		return err
	}
	txRef, err := relayer.Submit(hops, nonce, wallet)
	if err != nil {
		coordinator.Fail(ticket)
		return err
	}
	if err = coordinator.Complete(ticket, txRef); err != nil {
		return err
	}
	fmt.Printf("sent %s to %s in %d hops\nledger ref: %s\n", result.Amount.String(), result.Receiver, len(hops), txRef)
	return nil
}
