package relayer

import (
	"fmt"
	"net/http"

	"weft/engine/library"
)

// Account provisioning and trust management. These mirror the relayer's
// onboarding surface: a deterministic deploy address is prepared from a salt
// nonce first, then the user record is registered against it.

type deployRequest struct {
	Account   library.Account `json:"account"`
	SaltNonce int64           `json:"saltNonce"`
}

// PrepareDeploy asks the relayer to precompute the ledger address the
// account's safe will deploy to.
func PrepareDeploy(wallet library.Wallet, saltNonce int64) (library.Account, error) {
	var response struct {
		SafeAddress library.Account `json:"safeAddress"`
		Reason      string          `json:"reason"`
	}
	status, err := postJSON("/deploy", deployRequest{Account: wallet.Account, SaltNonce: saltNonce}, &response)
	if err != nil {
		return "", fmt.Errorf("preparing deploy for %s: %s", wallet.Account, err.Error())
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("relayer refused deploy for %s: %s", wallet.Account, response.Reason)
	}
	return response.SafeAddress, nil
}

type registration struct {
	Account     library.Account `json:"account"`
	SafeAddress library.Account `json:"safeAddress"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	Signature   string          `json:"signature"`
}

// RegisterUser binds a username and notification address to the prepared
// safe. The relayer verifies the signature before accepting the record.
func RegisterUser(wallet library.Wallet, username, email string, safeAddress library.Account) error {
	r := registration{
		Account:     wallet.Account,
		SafeAddress: safeAddress,
		Username:    username,
		Email:       email,
	}
	digest := library.Sha256Sum(r.Account + r.SafeAddress + r.Username + r.Email)
	signature, err := library.Sign(wallet.PrivateKey, digest)
	if err != nil {
		return fmt.Errorf("signing registration for %s: %s", wallet.Account, err.Error())
	}
	r.Signature = signature
	var response struct {
		Reason string `json:"reason"`
	}
	status, err := postJSON("/register", r, &response)
	if err != nil {
		return fmt.Errorf("registering %s: %s", username, err.Error())
	}
	if status != http.StatusOK {
		return fmt.Errorf("relayer refused registration for %s: %s", username, response.Reason)
	}
	return nil
}

type trustRequest struct {
	Account      library.Account `json:"account"`
	Trustee      library.Account `json:"trustee"`
	LimitPercent int64           `json:"limitPercent"`
	Signature    string          `json:"signature"`
}

// SetTrust submits a trust connection change: the wallet's account accepts
// the trustee's unit up to limitPercent of its own supply. Percent 0 revokes
// the connection.
func SetTrust(wallet library.Wallet, trustee library.Account, percent int64) (library.TxRef, error) {
	if percent < 0 || percent > 100 {
		return "", fmt.Errorf("trust limit must be between 0 and 100, got %d", percent)
	}
	t := trustRequest{
		Account:      wallet.Account,
		Trustee:      trustee,
		LimitPercent: percent,
	}
	digest := library.Sha256Sum(fmt.Sprintf("%s%s%d", t.Account, t.Trustee, t.LimitPercent))
	signature, err := library.Sign(wallet.PrivateKey, digest)
	if err != nil {
		return "", fmt.Errorf("signing trust change for %s: %s", wallet.Account, err.Error())
	}
	t.Signature = signature
	var response struct {
		TxRef  library.TxRef `json:"txRef"`
		Reason string        `json:"reason"`
	}
	status, err := postJSON("/trust", t, &response)
	if err != nil {
		return "", fmt.Errorf("submitting trust change for %s: %s", wallet.Account, err.Error())
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("relayer refused trust change for %s: %s", wallet.Account, response.Reason)
	}
	return response.TxRef, nil
}
