package relayer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"weft/engine/actors"
)

// Thin HTTP client for the settlement relayer. The relayer holds the ledger
// keys and the per-account nonce sequence, we only prepare, authorize, and
// hand over.

func endpoint() string {
	return actors.MakeOrGetConfig().GetString("relayerEndpoint")
}

func getJSON(path string, query url.Values, out interface{}) error {
	u := endpoint() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relayer returned %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

func postJSON(path string, payload interface{}, out interface{}) (int, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(endpoint()+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && len(body) > 0 {
		if err = json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding relayer response: %s", err.Error())
		}
	}
	return resp.StatusCode, nil
}
