package gamefi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/ton"
)

// Buy pays for a shop item with a jetton transfer to the merchant. The transfer
// carries "<userId>:<itemId>" so the ledger can credit the purchase; nothing is
// recorded locally, the next purchases refresh shows it.
func (c *Coordinator) Buy(ctx context.Context, user model.TelegramUser, itemIndex int) (string, error) {
	item, ok := c.item(itemIndex)
	if !ok {
		return "", fmt.Errorf("%w: %d", model.ErrUnknownItem, itemIndex)
	}
	if item.Price.Sign() == 0 {
		return "", fmt.Errorf("%w: %s is free", model.ErrUnknownItem, item.SystemName)
	}

	account := c.connectedAccount()
	if account == nil {
		return "", model.ErrWalletNotConnected
	}

	if c.opts.StrictBalanceCheck {
		if balance := c.GetBalance(ctx); balance.Cmp(item.Price) < 0 {
			return "", fmt.Errorf("%w: have %s, need %s", model.ErrInsufficientBalance, balance, item.Price)
		}
	}

	tag := model.CorrelationTag{UserID: user.ID, ItemID: itemIndex}
	req, err := c.builder.BuildTokenTransfer(ctx, item.Price, ton.EncodeCorrelationTag(tag), c.opts.TokenMaster, account.Address)
	if err != nil {
		return "", fmt.Errorf("failed to build purchase of %s: %w", item.SystemName, err)
	}

	boc, err := c.wallet.SendTransaction(ctx, *req)
	if err != nil {
		c.logger.Info("purchase not sent",
			zap.String("item", item.SystemName),
			zap.String("tag", tag.String()),
			zap.Error(err),
		)
		return "", err
	}

	c.logger.Info("purchase sent",
		zap.String("item", item.SystemName),
		zap.String("tag", tag.String()),
		zap.String("price", item.Price.String()),
	)
	return boc, nil
}
