//go:generate mockgen -source=coordinator.go -destination=../gen/mocks/gamefi/mocks.go -package=mocks

package gamefi

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
)

// Wallet is the connected wallet session
type Wallet interface {
	Session() model.WalletSession
	SendTransaction(ctx context.Context, req model.TransactionRequest) (string, error)
}

// TransferBuilder builds jetton transfers
type TransferBuilder interface {
	BuildTokenTransfer(ctx context.Context, amount *big.Int, forwardPayload *cell.Cell, masterAddress, ownerAddress string) (*model.TransactionRequest, error)
}

// BalanceReader reads jetton wallet state
type BalanceReader interface {
	GetTokenWalletData(ctx context.Context, owner, master string) (*model.TokenWalletRecord, error)
}

// Ledger is the off-chain purchase and reward ledger
type Ledger interface {
	Played(ctx context.Context, req model.PlayedRequest) (*model.PlayedResponse, error)
	Purchases(ctx context.Context, initData string) ([]model.PurchaseRecord, error)
}

// Options configure a Coordinator
type Options struct {
	TokenMaster           string
	Catalog               []model.ShopItem
	BalanceReloadInterval time.Duration
	BalanceFetchTimeout   time.Duration // bounds one shared balance fetch
	ShopReloadInterval    time.Duration
	StrictBalanceCheck    bool
}

// Coordinator ties the wallet session, the chain and the ledger into the game's flows
type Coordinator struct {
	wallet   Wallet
	builder  TransferBuilder
	balances BalanceReader
	ledger   Ledger
	store    storage.Store
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
	flight   singleflight.Group

	mu            sync.Mutex
	balance       *big.Int
	balanceCancel context.CancelFunc

	shopOpen   bool
	shopGen    uint64
	shopCancel context.CancelFunc
	purchases  []model.PurchaseRecord
	fetchedAt  time.Time
	stale      bool

	equipped int
}

// NewCoordinator creates a Coordinator
func NewCoordinator(wallet Wallet, builder TransferBuilder, balances BalanceReader, ledger Ledger, store storage.Store, opts Options, logger *zap.Logger) *Coordinator {
	if opts.BalanceReloadInterval <= 0 {
		opts.BalanceReloadInterval = 10 * time.Second
	}
	if opts.BalanceFetchTimeout <= 0 {
		opts.BalanceFetchTimeout = 30 * time.Second
	}
	if opts.ShopReloadInterval <= 0 {
		opts.ShopReloadInterval = 10 * time.Second
	}
	return &Coordinator{
		wallet:    wallet,
		builder:   builder,
		balances:  balances,
		ledger:    ledger,
		store:     store,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
		balance:   new(big.Int),
		purchases: []model.PurchaseRecord{},
	}
}

// Close stops the balance and shop schedules
func (c *Coordinator) Close() {
	c.HideBalance()
	c.CloseShop()
}

func (c *Coordinator) item(index int) (model.ShopItem, bool) {
	if index < 0 || index >= len(c.opts.Catalog) {
		return model.ShopItem{}, false
	}
	return c.opts.Catalog[index], true
}

// connectedAccount returns the wallet account or nil when not connected
func (c *Coordinator) connectedAccount() *model.Account {
	s := c.wallet.Session()
	if s.Status != model.StatusConnected || s.Account == nil {
		return nil
	}
	return s.Account
}
