package relayer

import (
	"fmt"
	"net/url"

	"weft/engine/library"
)

// Observer reports relayer-side funding balances. It satisfies the settlement
// coordinator's BalanceObserver.
type Observer struct{}

func (o Observer) BalanceOf(account library.Account) (library.Amount, error) {
	var response struct {
		Balance string `json:"balance"`
	}
	query := url.Values{"account": {account}}
	if err := getJSON("/balance", query, &response); err != nil {
		return library.Amount{}, fmt.Errorf("fetching funding balance for %s: %s", account, err.Error())
	}
	balance, err := library.ParseAmount(response.Balance)
	if err != nil {
		return library.Amount{}, fmt.Errorf("funding balance for %s: %s", account, err.Error())
	}
	return balance, nil
}
