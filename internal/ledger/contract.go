package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrTransactionFailed is returned when a mined transaction reverted.
var ErrTransactionFailed = errors.New("transaction reverted")

// contract is the narrow surface of bind.BoundContract the client needs.
type contract interface {
	call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error)
	transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (*types.Receipt, error)
}

type boundContract struct {
	bound          *bind.BoundContract
	backend        bind.DeployBackend
	auth           *bind.TransactOpts
	receiptTimeout time.Duration
}

func (b *boundContract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: b.auth.From}
	if err := b.bound.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	return out, nil
}

// transact sends the transaction and blocks until it is mined or the
// receipt timeout expires.
func (b *boundContract) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (*types.Receipt, error) {
	opts := *b.auth
	opts.Context = ctx
	opts.Value = value

	tx, err := b.bound.Transact(&opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", method, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.receiptTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, b.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s (tx %s): %w", method, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s (tx %s)", ErrTransactionFailed, method, tx.Hash().Hex())
	}
	return receipt, nil
}

func asString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("unexpected output type %T, want string", v)
	}
	return s, nil
}

func asBigInt(v interface{}) (*big.Int, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T, want *big.Int", v)
	}
	return n, nil
}

func asAddress(v interface{}) (common.Address, error) {
	a, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected output type %T, want address", v)
	}
	return a, nil
}
