package ledger

import (
	"bytes"
	"crypto/ecdsa"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

//go:embed abi/gitgrant.json
var defaultABI []byte

// LoadABI parses the contract ABI at path, or the bundled GitGrant ABI when
// path is empty. Both a bare ABI array and a compiler artifact with an "abi"
// field are accepted.
func LoadABI(path string) (abi.ABI, error) {
	data := defaultABI
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return abi.ABI{}, fmt.Errorf("failed to read ABI file: %w", err)
		}
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(data, &artifact); err != nil {
			return abi.ABI{}, fmt.Errorf("failed to decode ABI artifact: %w", err)
		}
		if len(artifact.ABI) == 0 {
			return abi.ABI{}, fmt.Errorf("ABI artifact %s has no abi field", path)
		}
		data = artifact.ABI
	}

	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return parsed, nil
}

// LoadContractAddress reads the deployed contract address from a text file.
func LoadContractAddress(path string) (common.Address, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to read contract address file: %w", err)
	}
	raw := strings.TrimSpace(string(data))
	if !common.IsHexAddress(raw) {
		return common.Address{}, fmt.Errorf("invalid contract address %q in %s", raw, path)
	}
	return common.HexToAddress(raw), nil
}

// LoadPrivateKey reads the signing key. The file holds either a hex-encoded
// private key or an encrypted keystore JSON document.
func LoadPrivateKey(path, passphrase string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wallet key file: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		key, err := keystore.DecryptKey(data, passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt keystore %s: %w", path, err)
		}
		return key.PrivateKey, nil
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(string(data), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key in %s: %w", path, err)
	}
	return key, nil
}
