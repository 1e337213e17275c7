package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadABI(t *testing.T) {
	bundled, err := LoadABI("")
	require.NoError(t, err)
	for _, method := range []string{"registerUser", "registerRepo", "updateIssues", "resolveIssue", "depositFunds", "owner", "repoStates", "userWallets"} {
		assert.Contains(t, bundled.Methods, method)
	}

	artifact, err := json.Marshal(map[string]json.RawMessage{"abi": defaultABI})
	require.NoError(t, err)
	fromArtifact, err := LoadABI(writeFile(t, "GitGrant.json", string(artifact)))
	require.NoError(t, err)
	assert.Len(t, fromArtifact.Methods, len(bundled.Methods))

	_, err = LoadABI(writeFile(t, "empty.json", `{"bytecode": "0x"}`))
	assert.Error(t, err)

	_, err = LoadABI(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadContractAddress(t *testing.T) {
	addr, err := LoadContractAddress(writeFile(t, "contract_address.txt", "0x1111111111111111111111111111111111111111\n"))
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", addr.Hex())

	_, err = LoadContractAddress(writeFile(t, "bad.txt", "0x12"))
	assert.Error(t, err)
}

func TestLoadPrivateKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	want := crypto.PubkeyToAddress(key.PublicKey)

	t.Run("hex", func(t *testing.T) {
		hexKey := hexutil.Encode(crypto.FromECDSA(key))
		got, err := LoadPrivateKey(writeFile(t, "wallet.key", hexKey+"\n"), "")
		require.NoError(t, err)
		assert.Equal(t, want, crypto.PubkeyToAddress(got.PublicKey))
	})

	t.Run("keystore", func(t *testing.T) {
		ks := &keystore.Key{Id: uuid.New(), Address: want, PrivateKey: key}
		data, err := keystore.EncryptKey(ks, "secret", keystore.LightScryptN, keystore.LightScryptP)
		require.NoError(t, err)
		path := writeFile(t, "wallet.json", string(data))

		got, err := LoadPrivateKey(path, "secret")
		require.NoError(t, err)
		assert.Equal(t, want, crypto.PubkeyToAddress(got.PublicKey))

		_, err = LoadPrivateKey(path, "wrong")
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := LoadPrivateKey(writeFile(t, "wallet.key", "zz"), "")
		assert.Error(t, err)
	})
}
