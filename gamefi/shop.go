package gamefi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
)

// OpenShop loads the purchase list and keeps refreshing it while the shop is open.
// If the first load fails the shop stays closed.
func (c *Coordinator) OpenShop(ctx context.Context, initData string) (model.PurchasesView, error) {
	c.mu.Lock()
	c.stopShopLocked()
	c.shopGen++
	gen := c.shopGen
	c.mu.Unlock()

	records, err := c.ledger.Purchases(ctx, initData)
	if err != nil {
		return c.Purchases(), fmt.Errorf("failed to open shop: %w", err)
	}

	c.mu.Lock()
	if gen != c.shopGen {
		// closed or reopened meanwhile
		c.mu.Unlock()
		return c.Purchases(), nil
	}
	c.setPurchasesLocked(records)
	c.shopOpen = true
	loopCtx, cancel := context.WithCancel(context.Background())
	c.shopCancel = cancel
	c.mu.Unlock()

	go c.reloadPurchases(loopCtx, gen, initData)
	return c.Purchases(), nil
}

// CloseShop stops the refresh. A refresh already in flight is discarded when it returns.
func (c *Coordinator) CloseShop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopShopLocked()
	c.shopGen++
}

// RefreshPurchases reloads the purchase list once. On failure the previous list is kept
// and marked stale.
func (c *Coordinator) RefreshPurchases(ctx context.Context, initData string) error {
	c.mu.Lock()
	gen := c.shopGen
	c.mu.Unlock()

	return c.refreshPurchases(ctx, gen, initData)
}

// Purchases returns the catalogue with the last fetched purchase list
func (c *Coordinator) Purchases() model.PurchasesView {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.PurchasesView{
		Items:     append([]model.ShopItem(nil), c.opts.Catalog...),
		Purchases: append([]model.PurchaseRecord{}, c.purchases...),
		Equipped:  c.equipped,
		FetchedAt: c.fetchedAt,
		Stale:     c.stale,
	}
}

func (c *Coordinator) refreshPurchases(ctx context.Context, gen uint64, initData string) error {
	records, err := c.ledger.Purchases(ctx, initData)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.shopGen || !c.shopOpen {
		c.logger.Debug("discarding purchases of a closed shop")
		return nil
	}
	if err != nil {
		c.stale = true
		c.logger.Warn("failed to refresh purchases", zap.Error(err))
		return err
	}
	c.setPurchasesLocked(records)
	return nil
}

func (c *Coordinator) reloadPurchases(ctx context.Context, gen uint64, initData string) {
	ticker := time.NewTicker(c.opts.ShopReloadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refreshPurchases(ctx, gen, initData)
		}
	}
}

func (c *Coordinator) setPurchasesLocked(records []model.PurchaseRecord) {
	c.purchases = append([]model.PurchaseRecord{}, records...)
	c.fetchedAt = c.now()
	c.stale = false
}

func (c *Coordinator) stopShopLocked() {
	c.shopOpen = false
	if c.shopCancel != nil {
		c.shopCancel()
		c.shopCancel = nil
	}
}

func (c *Coordinator) ownedLocked(systemName string) bool {
	for _, p := range c.purchases {
		if p.SystemName == systemName {
			return true
		}
	}
	return false
}

// Equip chooses the cosmetic item used in game. Only free or purchased items can be equipped.
func (c *Coordinator) Equip(ctx context.Context, itemIndex int) error {
	item, ok := c.item(itemIndex)
	if !ok {
		return fmt.Errorf("%w: %d", model.ErrUnknownItem, itemIndex)
	}

	c.mu.Lock()
	owned := item.Price.Sign() == 0 || c.ownedLocked(item.SystemName)
	c.mu.Unlock()
	if !owned {
		return fmt.Errorf("%w: %s", model.ErrItemNotOwned, item.SystemName)
	}

	if err := c.store.Set(ctx, storage.KeyChosenItem, []byte(strconv.Itoa(itemIndex))); err != nil {
		return fmt.Errorf("failed to save chosen item: %w", err)
	}

	c.mu.Lock()
	c.equipped = itemIndex
	c.mu.Unlock()
	return nil
}

// Equipped returns the chosen item index
func (c *Coordinator) Equipped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.equipped
}

// LoadEquipped restores the chosen item from the store. A missing or
// unknown value falls back to the default item.
func (c *Coordinator) LoadEquipped(ctx context.Context) (int, error) {
	raw, err := c.store.Get(ctx, storage.KeyChosenItem)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Equipped(), nil
	}
	if err != nil {
		return c.Equipped(), fmt.Errorf("failed to load chosen item: %w", err)
	}

	index, err := strconv.Atoi(string(raw))
	if _, ok := c.item(index); err != nil || !ok {
		c.logger.Warn("ignoring invalid chosen item", zap.ByteString("value", raw))
		index = 0
	}

	c.mu.Lock()
	c.equipped = index
	c.mu.Unlock()
	return index, nil
}
