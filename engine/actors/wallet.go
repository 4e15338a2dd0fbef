package actors

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/sasha-s/go-deadlock"
	"weft/engine/library"
)

var currentWallet library.Wallet
var currentWalletMutex = &deadlock.Mutex{}

// MyWallet returns the current Wallet or creates a new one if there isn't one already
func MyWallet() library.Wallet {
	currentWalletMutex.Lock()
	defer currentWalletMutex.Unlock()
	if len(currentWallet.PrivateKey) == 0 {
		//try to restore wallet from disk
		if w, ok := getWalletFromDisk(); ok {
			currentWallet = w
		} else {
			LogCLI("Generating a new wallet, back up the private key if you want to keep it", 4)
			currentWallet = makeNewWallet()
			fmt.Printf("\n\n~NEW WALLET~\nAccount: %s\nPrivate Key: %s\n\n", currentWallet.Account, currentWallet.PrivateKey)
		}
	}
	if err := persistCurrentWallet(); err != nil {
		LogCLI(err.Error(), 0)
	}
	return currentWallet
}

func makeNewWallet() library.Wallet {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		LogCLI(err.Error(), 0)
	}
	privateKey := hex.EncodeToString(sk.Serialize())
	return library.Wallet{
		PrivateKey: privateKey,
		Account:    getPubKey(privateKey),
	}
}

func getPubKey(privateKey string) string {
	if keyb, err := hex.DecodeString(privateKey); err != nil {
		LogCLI(fmt.Sprintf("Error decoding key from hex: %s\n", err.Error()), 0)
	} else {
		_, pubkey := btcec.PrivKeyFromBytes(keyb)
		// x-only, zero padded to 32 bytes so it round-trips through Verify
		return hex.EncodeToString(schnorr.SerializePubKey(pubkey))
	}
	return ""
}

func persistCurrentWallet() error {
	file, err := os.Create(MakeOrGetConfig().GetString("rootDir") + "wallet.dat")
	if err != nil {
		LogCLI(err.Error(), 0)
	}
	defer file.Close()
	bytes, err := json.Marshal(currentWallet)
	if err != nil {
		LogCLI(err.Error(), 0)
	}
	_, err = file.Write(bytes)
	if err != nil {
		LogCLI(err.Error(), 0)
	}
	return nil
}

func getWalletFromDisk() (w library.Wallet, ok bool) {
	file, err := ioutil.ReadFile(MakeOrGetConfig().GetString("rootDir") + "wallet.dat")
	if err != nil {
		LogCLI(fmt.Sprintf("Error getting wallet file: %s", err.Error()), 2)
		return library.Wallet{}, false
	}
	err = json.Unmarshal(file, &w)
	if err != nil {
		LogCLI(fmt.Sprintf("Error parsing wallet file: %s", err.Error()), 3)
		return library.Wallet{}, false
	}
	return w, true
}
