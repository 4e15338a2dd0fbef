package relayer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"weft/engine/actors"
	"weft/engine/library"
)

// submission carries the transferThrough argument arrays the ledger contract
// takes, parallel by index, plus the originator's nonce and authorization.
type submission struct {
	Account      library.Account   `json:"account"`
	Nonce        int64             `json:"nonce"`
	TokenOwners  []library.Account `json:"tokenOwners"`
	Sources      []library.Account `json:"srcs"`
	Destinations []library.Account `json:"dests"`
	Values       []string          `json:"wads"`
	Signature    string            `json:"signature,omitempty"`
}

type submissionResponse struct {
	TxRef  library.TxRef `json:"txRef"`
	Reason string        `json:"reason"`
}

// Submit authorizes the hop sequence with the wallet key and hands it to the
// relayer for on-ledger execution under the given nonce. Rejection comes back
// as a SettlementFailed error carrying the relayer's reason.
func Submit(hops []library.Hop, nonce int64, wallet library.Wallet) (library.TxRef, error) {
	sane := library.ValidateSaneExecutionTime()
	defer sane()
	if len(hops) == 0 {
		return "", library.NewTransferError(library.ErrInvalidOptions, "nothing to submit, the hop list is empty")
	}
	s := submission{
		Account: wallet.Account,
		Nonce:   nonce,
	}
	for _, hop := range hops {
		s.TokenOwners = append(s.TokenOwners, hop.Issuer)
		s.Sources = append(s.Sources, hop.Src)
		s.Destinations = append(s.Destinations, hop.Dest)
		s.Values = append(s.Values, hop.Amount.String())
	}
	digest, err := payloadDigest(s)
	if err != nil {
		return "", err
	}
	s.Signature, err = library.Sign(wallet.PrivateKey, digest)
	if err != nil {
		return "", fmt.Errorf("signing submission for %s: %s", wallet.Account, err.Error())
	}
	if actors.MakeOrGetConfig().GetBool("doNotSubmit") {
		library.LogCLI(fmt.Sprintf("doNotSubmit is set, dropping settlement %s for %s", digest, wallet.Account), 2)
		return digest, nil
	}
	var response submissionResponse
	status, err := postJSON("/transfer", s, &response)
	if err != nil {
		return "", library.NewTransferError(library.ErrSettlementFailed, "submitting settlement for %s: %s", wallet.Account, err.Error())
	}
	if status != http.StatusOK {
		return "", library.NewTransferError(library.ErrSettlementFailed, "relayer rejected settlement for %s: %s", wallet.Account, response.Reason).
			With("status", fmt.Sprintf("%d", status)).
			With("nonce", fmt.Sprintf("%d", nonce))
	}
	return response.TxRef, nil
}

// payloadDigest hashes the submission without its signature so the relayer
// can rebuild and verify the same digest.
func payloadDigest(s submission) (library.Sha256, error) {
	unsigned := s
	unsigned.Signature = ""
	b, err := json.Marshal(unsigned)
	if err != nil {
		return "", fmt.Errorf("encoding submission: %s", err.Error())
	}
	return library.Sha256Sum(b), nil
}

// NextNonce asks the relayer for the next submission nonce of the account.
// The sequence is strictly increasing and owned by the relayer, we never
// guess it locally.
func NextNonce(account library.Account) (int64, error) {
	var response struct {
		Nonce int64 `json:"nonce"`
	}
	query := url.Values{"account": {account}}
	if err := getJSON("/nonce", query, &response); err != nil {
		return 0, fmt.Errorf("fetching nonce for %s: %s", account, err.Error())
	}
	return response.Nonce, nil
}
