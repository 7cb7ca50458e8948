package gamefi

import (
	"context"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// GetBalance returns the player's token balance in base units.
// Any failure, including a disconnected wallet, reads as zero.
// Concurrent callers share one fetch; each stops waiting when its own ctx ends.
func (c *Coordinator) GetBalance(ctx context.Context) *big.Int {
	account := c.connectedAccount()
	if account == nil {
		return new(big.Int)
	}

	ch := c.flight.DoChan(account.Address, func() (any, error) {
		// the fetch outlives whichever caller started it
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.BalanceFetchTimeout)
		defer cancel()

		record, err := c.balances.GetTokenWalletData(fetchCtx, account.Address, c.opts.TokenMaster)
		if err != nil {
			c.logger.Warn("failed to get token balance", zap.String("owner", account.Address), zap.Error(err))
			return new(big.Int), nil
		}
		if record.Balance == nil {
			return new(big.Int), nil
		}
		return record.Balance, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return new(big.Int)
	case res = <-ch:
	}

	balance := new(big.Int).Set(res.Val.(*big.Int))

	c.mu.Lock()
	c.balance = balance
	c.mu.Unlock()

	return new(big.Int).Set(balance)
}

// Balance returns the last fetched balance
func (c *Coordinator) Balance() *big.Int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return new(big.Int).Set(c.balance)
}

// ShowBalance fetches the balance now and keeps refreshing it until HideBalance
func (c *Coordinator) ShowBalance(ctx context.Context) *big.Int {
	c.mu.Lock()
	if c.balanceCancel == nil {
		loopCtx, cancel := context.WithCancel(context.Background())
		c.balanceCancel = cancel
		go c.reloadBalance(loopCtx)
	}
	c.mu.Unlock()

	return c.GetBalance(ctx)
}

// HideBalance stops the balance refresh
func (c *Coordinator) HideBalance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balanceCancel != nil {
		c.balanceCancel()
		c.balanceCancel = nil
	}
}

func (c *Coordinator) reloadBalance(ctx context.Context) {
	ticker := time.NewTicker(c.opts.BalanceReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.GetBalance(ctx)
		}
	}
}
