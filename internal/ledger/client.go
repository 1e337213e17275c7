// Package ledger talks to the GitGrant bounty contract on an EVM chain.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/sevigo/gitgrant/internal/config"
	"github.com/sevigo/gitgrant/internal/core"
)

var ErrInvalidWallet = errors.New("invalid wallet address")

// issueRating mirrors the contract's GitGrant.Issue tuple. Field names must
// match the ABI component names.
type issueRating struct {
	IssueNumber      *big.Int
	DifficultyRating *big.Int
}

// Client implements core.Ledger on top of the contract bindings.
type Client struct {
	contract contract
	logger   *slog.Logger
}

var _ core.Ledger = (*Client)(nil)

// NewClient dials the RPC endpoint and binds the contract using the files
// named in cfg. The returned cleanup closes the RPC connection.
func NewClient(ctx context.Context, cfg config.LedgerConfig, logger *slog.Logger) (*Client, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	parsed, err := LoadABI(cfg.ABIPath)
	if err != nil {
		return nil, nil, err
	}
	address, err := LoadContractAddress(cfg.AddressPath)
	if err != nil {
		return nil, nil, err
	}
	key, err := LoadPrivateKey(cfg.WalletKeyPath, cfg.KeystorePassphrase)
	if err != nil {
		return nil, nil, err
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.RPCURL, err)
	}

	logger.Info("ledger client ready", "contract", address.Hex(), "sender", auth.From.Hex(), "chain_id", cfg.ChainID)
	c := &boundContract{
		bound:          bind.NewBoundContract(address, parsed, eth, eth, eth),
		backend:        eth,
		auth:           auth,
		receiptTimeout: cfg.ReceiptTimeout,
	}
	return newClient(c, logger), eth.Close, nil
}

func newClient(c contract, logger *slog.Logger) *Client {
	return &Client{contract: c, logger: logger}
}

// RegisterUser links a GitHub username to a wallet address.
func (c *Client) RegisterUser(ctx context.Context, username, wallet string) error {
	if !common.IsHexAddress(wallet) {
		return fmt.Errorf("%w: %q", ErrInvalidWallet, wallet)
	}
	receipt, err := c.contract.transact(ctx, nil, "registerUser", username, common.HexToAddress(wallet))
	if err != nil {
		return fmt.Errorf("failed to register user %s: %w", username, err)
	}
	c.logMined("registerUser", receipt, "username", username)
	return nil
}

// RegisterRepo registers the repository under its "owner/repo" key.
func (c *Client) RegisterRepo(ctx context.Context, owner, repo string) error {
	repoID := core.RepoID(owner, repo)
	receipt, err := c.contract.transact(ctx, nil, "registerRepo", repoID, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to register repo %s: %w", repoID, err)
	}
	c.logMined("registerRepo", receipt, "repo", repoID)
	return nil
}

// UpdateIssues replaces the stored ratings and rating sum of a repository.
// Negative values are rejected: uint256 packing would wrap them.
func (c *Client) UpdateIssues(ctx context.Context, repoID string, ratings []core.IssueRating, totalRating int) error {
	if totalRating < 0 {
		return fmt.Errorf("%w: total rating %d", core.ErrInvalidIssueRating, totalRating)
	}
	tuples := make([]issueRating, 0, len(ratings))
	for _, r := range ratings {
		if r.Number < 0 || r.Rating < 0 {
			return fmt.Errorf("%w: issue %d rating %d", core.ErrInvalidIssueRating, r.Number, r.Rating)
		}
		tuples = append(tuples, issueRating{
			IssueNumber:      big.NewInt(int64(r.Number)),
			DifficultyRating: big.NewInt(int64(r.Rating)),
		})
	}

	receipt, err := c.contract.transact(ctx, nil, "updateIssues", repoID, tuples, big.NewInt(int64(totalRating)))
	if err != nil {
		return fmt.Errorf("failed to update issues for %s: %w", repoID, err)
	}
	c.logMined("updateIssues", receipt, "repo", repoID, "issues", len(ratings), "total_rating", totalRating)
	return nil
}

// ResolveIssue pays amount to the user's wallet and closes the issue on the ledger.
func (c *Client) ResolveIssue(ctx context.Context, repoID string, issueNumber int, username string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("invalid payout amount %v", amount)
	}
	if issueNumber < 0 {
		return fmt.Errorf("%w: issue %d", core.ErrInvalidIssueRating, issueNumber)
	}
	receipt, err := c.contract.transact(ctx, nil, "resolveIssue", repoID, big.NewInt(int64(issueNumber)), username, amount)
	if err != nil {
		return fmt.Errorf("failed to resolve issue %s#%d: %w", repoID, issueNumber, err)
	}
	c.logMined("resolveIssue", receipt, "repo", repoID, "issue", issueNumber, "username", username, "amount", amount.String())
	return nil
}

// DepositFunds adds amount wei to the repository budget.
func (c *Client) DepositFunds(ctx context.Context, repoID string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("deposit amount must be positive, got %v", amount)
	}
	receipt, err := c.contract.transact(ctx, amount, "depositFunds", repoID)
	if err != nil {
		return fmt.Errorf("failed to deposit funds for %s: %w", repoID, err)
	}
	c.logMined("depositFunds", receipt, "repo", repoID, "amount", amount.String())
	return nil
}

// Owner returns the contract owner's address.
func (c *Client) Owner(ctx context.Context) (string, error) {
	out, err := c.contract.call(ctx, "owner")
	if err != nil {
		return "", err
	}
	if len(out) != 1 {
		return "", fmt.Errorf("owner: expected 1 output, got %d", len(out))
	}
	addr, err := asAddress(out[0])
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

// GetRepoState reads the repository record. Unknown repositories come back
// with an empty owner name.
func (c *Client) GetRepoState(ctx context.Context, repoID string) (*core.RepoState, error) {
	out, err := c.contract.call(ctx, "repoStates", repoID)
	if err != nil {
		return nil, fmt.Errorf("failed to read repo state for %s: %w", repoID, err)
	}
	if len(out) != 4 {
		return nil, fmt.Errorf("repoStates: expected 4 outputs, got %d", len(out))
	}

	state := &core.RepoState{}
	if state.OwnerName, err = asString(out[0]); err != nil {
		return nil, err
	}
	if state.RepoName, err = asString(out[1]); err != nil {
		return nil, err
	}
	if state.RemainingBudget, err = asBigInt(out[2]); err != nil {
		return nil, err
	}
	if state.RatingSum, err = asBigInt(out[3]); err != nil {
		return nil, err
	}
	return state, nil
}

// CheckRepoRegistration reports whether the repository has a ledger record.
func (c *Client) CheckRepoRegistration(ctx context.Context, repoID string) (bool, error) {
	state, err := c.GetRepoState(ctx, repoID)
	if err != nil {
		return false, err
	}
	return state.Registered(), nil
}

// GetContributorAddress returns the wallet registered for username, or an
// empty string when the user is unknown.
func (c *Client) GetContributorAddress(ctx context.Context, username string) (string, error) {
	out, err := c.contract.call(ctx, "userWallets", username)
	if err != nil {
		return "", fmt.Errorf("failed to read wallet for %s: %w", username, err)
	}
	if len(out) != 1 {
		return "", fmt.Errorf("userWallets: expected 1 output, got %d", len(out))
	}
	addr, err := asAddress(out[0])
	if err != nil {
		return "", err
	}
	if addr == (common.Address{}) {
		return "", nil
	}
	return addr.Hex(), nil
}

func (c *Client) logMined(method string, receipt *types.Receipt, args ...any) {
	attrs := append([]any{"method", method}, args...)
	if receipt != nil {
		attrs = append(attrs, "tx", receipt.TxHash.Hex(), "block", receipt.BlockNumber, "gas_used", receipt.GasUsed)
	}
	c.logger.Info("ledger transaction mined", attrs...)
}
