package gamefi

import (
	"context"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// View lays out the UI for a session status
func View(s model.WalletSession) model.View {
	if s.Status == model.StatusConnected {
		return model.View{
			GameMode:       true,
			BalanceVisible: true,
			ConnectControl: model.PlacementCorner,
		}
	}
	return model.View{ConnectControl: model.PlacementCenter}
}

// View returns the current layout, including whether the shop is open
func (c *Coordinator) View() model.View {
	v := View(c.wallet.Session())
	c.mu.Lock()
	v.ShopVisible = v.GameMode && c.shopOpen
	c.mu.Unlock()
	return v
}

// OnStatusChange keeps background refreshes in line with the session:
// connecting shows the balance, disconnecting hides it and closes the shop.
func (c *Coordinator) OnStatusChange(ev model.StatusEvent) {
	switch ev.To {
	case model.StatusConnected:
		go c.ShowBalance(context.Background())
	case model.StatusDisconnected:
		c.HideBalance()
		c.CloseShop()
	}
}
