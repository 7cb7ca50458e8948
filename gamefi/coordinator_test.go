package gamefi

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/tvm/cell"
	"go.uber.org/zap"

	mocks "github.com/AlexZinkM/ton-gamefi/gen/mocks/gamefi"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/internal/storage"
	"github.com/AlexZinkM/ton-gamefi/ton"
)

const (
	testOwner  = "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8"
	testMaster = "EQAvlWFDxGF2lXm67y4yzC17wYKD9A0guwPkMs1gOsM__NOT"
	testInit   = `query_id=AAH&user={"id":42}&hash=abc`
)

var (
	connected = model.WalletSession{
		Status:  model.StatusConnected,
		Account: &model.Account{Address: testOwner, Chain: "-239"},
	}
	disconnected = model.WalletSession{Status: model.StatusDisconnected}

	testCatalog = []model.ShopItem{
		{Index: 0, SystemName: "pipe-green", Price: big.NewInt(0)},
		{Index: 1, SystemName: "pipe-red", Price: big.NewInt(80)},
		{Index: 2, SystemName: "pipe-blue", Price: big.NewInt(120)},
	}
)

type deps struct {
	wallet   *mocks.MockWallet
	builder  *mocks.MockTransferBuilder
	balances *mocks.MockBalanceReader
	ledger   *mocks.MockLedger
	store    *storage.MemoryStore
}

func newDeps(ctrl *gomock.Controller) *deps {
	return &deps{
		wallet:   mocks.NewMockWallet(ctrl),
		builder:  mocks.NewMockTransferBuilder(ctrl),
		balances: mocks.NewMockBalanceReader(ctrl),
		ledger:   mocks.NewMockLedger(ctrl),
		store:    storage.NewMemoryStore(),
	}
}

func (d *deps) coordinator(t *testing.T, opts Options) *Coordinator {
	t.Helper()

	opts.TokenMaster = testMaster
	if opts.Catalog == nil {
		opts.Catalog = testCatalog
	}
	if opts.ShopReloadInterval == 0 {
		opts.ShopReloadInterval = time.Hour
	}
	if opts.BalanceReloadInterval == 0 {
		opts.BalanceReloadInterval = time.Hour
	}
	c := NewCoordinator(d.wallet, d.builder, d.balances, d.ledger, d.store, opts, zap.NewNop())
	t.Cleanup(c.Close)
	return c
}

func TestCoordinator_GetBalance(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name      string
		prepareFn func(t *testing.T, d *deps)
		expected  string
	}

	tests := []testCase{
		{
			name: "connected wallet",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.balances.EXPECT().
					GetTokenWalletData(gomock.Any(), testOwner, testMaster).
					Return(&model.TokenWalletRecord{Balance: big.NewInt(250)}, nil).
					Times(1)
			},
			expected: "250",
		},
		{
			name: "chain query fails",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.balances.EXPECT().
					GetTokenWalletData(gomock.Any(), testOwner, testMaster).
					Return(nil, model.ErrChainQueryFailed).
					Times(1)
			},
			expected: "0",
		},
		{
			name: "wallet not connected",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(disconnected)
			},
			expected: "0",
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			d := newDeps(ctrl)
			tt.prepareFn(t, d)
			c := d.coordinator(t, Options{})

			balance := c.GetBalance(context.Background())
			assert.Equal(t, tt.expected, balance.String())
			assert.Equal(t, tt.expected, c.Balance().String())
		})
	}
}

func TestCoordinator_ShowBalanceRefreshes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	d.wallet.EXPECT().Session().Return(connected).AnyTimes()

	calls := make(chan struct{}, 16)
	d.balances.EXPECT().
		GetTokenWalletData(gomock.Any(), testOwner, testMaster).
		DoAndReturn(func(context.Context, string, string) (*model.TokenWalletRecord, error) {
			select {
			case calls <- struct{}{}:
			default:
			}
			return &model.TokenWalletRecord{Balance: big.NewInt(7)}, nil
		}).
		MinTimes(2)

	c := d.coordinator(t, Options{BalanceReloadInterval: 10 * time.Millisecond})
	assert.Equal(t, "7", c.ShowBalance(context.Background()).String())

	<-calls
	select {
	case <-calls:
	case <-time.After(time.Second):
		t.Fatal("balance was not refreshed")
	}
	c.HideBalance()
}

func TestCoordinator_BalanceSingleFlight(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	d.wallet.EXPECT().Session().Return(connected).AnyTimes()

	started := make(chan struct{})
	release := make(chan struct{})
	d.balances.EXPECT().
		GetTokenWalletData(gomock.Any(), testOwner, testMaster).
		DoAndReturn(func(context.Context, string, string) (*model.TokenWalletRecord, error) {
			close(started)
			<-release
			return &model.TokenWalletRecord{Balance: big.NewInt(640)}, nil
		}).
		Times(1)

	c := d.coordinator(t, Options{})

	const callers = 8
	results := make([]string, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := range callers {
		go func() {
			defer wg.Done()
			// the scheduled display refresh joins like any other caller
			if i == 0 {
				results[i] = c.ShowBalance(context.Background()).String()
				return
			}
			results[i] = c.GetBalance(context.Background()).String()
		}()
	}

	<-started
	// let every caller reach the in-flight fetch
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	c.HideBalance()

	for i, r := range results {
		assert.Equal(t, "640", r, "caller %d", i)
	}
	assert.Equal(t, "640", c.Balance().String())
}

func TestCoordinator_BalanceFetchOutlivesStarter(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	d.wallet.EXPECT().Session().Return(connected).AnyTimes()

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	d.balances.EXPECT().
		GetTokenWalletData(gomock.Any(), testOwner, testMaster).
		DoAndReturn(func(ctx context.Context, _, _ string) (*model.TokenWalletRecord, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return &model.TokenWalletRecord{Balance: big.NewInt(90)}, nil
		}).
		MinTimes(1)

	c := d.coordinator(t, Options{})

	starterCtx, cancelStarter := context.WithCancel(context.Background())
	starter := make(chan string, 1)
	go func() { starter <- c.GetBalance(starterCtx).String() }()
	<-started

	joined := make(chan string, 1)
	go func() { joined <- c.GetBalance(context.Background()).String() }()
	time.Sleep(50 * time.Millisecond)

	cancelStarter()
	select {
	case r := <-starter:
		assert.Equal(t, "0", r)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case r := <-joined:
		assert.Equal(t, "90", r)
	case <-time.After(time.Second):
		t.Fatal("joined caller did not get the balance")
	}
	assert.Equal(t, "90", c.Balance().String())
}

func TestCoordinator_BalanceFetchTimeout(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	d.wallet.EXPECT().Session().Return(connected)
	d.balances.EXPECT().
		GetTokenWalletData(gomock.Any(), testOwner, testMaster).
		DoAndReturn(func(ctx context.Context, _, _ string) (*model.TokenWalletRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).
		Times(1)

	c := d.coordinator(t, Options{BalanceFetchTimeout: 20 * time.Millisecond})
	assert.Equal(t, "0", c.GetBalance(context.Background()).String())
}

func TestCoordinator_Buy(t *testing.T) {
	t.Parallel()

	user := model.TelegramUser{ID: 42}
	request := &model.TransactionRequest{
		ValidUntil: time.Now().Add(time.Hour).Unix(),
		Messages:   []model.Message{{Address: "0:jetton-wallet", Amount: "50000000"}},
	}

	type testCase struct {
		name      string
		itemIndex int
		strict    bool
		prepareFn func(t *testing.T, d *deps)

		expectedBOC string
		expectedErr error
	}

	tests := []testCase{
		{
			name:      "successful purchase",
			itemIndex: 1,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.builder.EXPECT().
					BuildTokenTransfer(gomock.Any(), big.NewInt(80), gomock.Any(), testMaster, testOwner).
					DoAndReturn(func(_ context.Context, _ *big.Int, payload *cell.Cell, _, _ string) (*model.TransactionRequest, error) {
						tag, err := ton.DecodeCorrelationTag(payload)
						require.NoError(t, err)
						assert.Equal(t, model.CorrelationTag{UserID: 42, ItemID: 1}, tag)
						return request, nil
					}).
					Times(1)
				d.wallet.EXPECT().SendTransaction(gomock.Any(), *request).Return("te6boc", nil).Times(1)
			},
			expectedBOC: "te6boc",
		},
		{
			name:      "wallet rejects for low balance",
			itemIndex: 2,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.builder.EXPECT().
					BuildTokenTransfer(gomock.Any(), big.NewInt(120), gomock.Any(), testMaster, testOwner).
					Return(request, nil).
					Times(1)
				d.wallet.EXPECT().
					SendTransaction(gomock.Any(), gomock.Any()).
					Return("", &model.WalletError{Kind: model.ErrTransactionRejected, Code: 1, Message: "insufficient funds"}).
					Times(1)
			},
			expectedErr: model.ErrTransactionRejected,
		},
		{
			name:      "strict check with low balance",
			itemIndex: 2,
			strict:    true,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected).Times(2)
				d.balances.EXPECT().
					GetTokenWalletData(gomock.Any(), testOwner, testMaster).
					Return(&model.TokenWalletRecord{Balance: big.NewInt(100)}, nil).
					Times(1)
			},
			expectedErr: model.ErrInsufficientBalance,
		},
		{
			name:      "chain query fails while locating token wallet",
			itemIndex: 1,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.builder.EXPECT().
					BuildTokenTransfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, model.ErrChainQueryFailed).
					Times(1)
			},
			expectedErr: model.ErrChainQueryFailed,
		},
		{
			name:      "wallet not connected",
			itemIndex: 1,
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(disconnected)
			},
			expectedErr: model.ErrWalletNotConnected,
		},
		{
			name:        "unknown item",
			itemIndex:   9,
			prepareFn:   func(t *testing.T, d *deps) { t.Helper() },
			expectedErr: model.ErrUnknownItem,
		},
		{
			name:        "free item",
			itemIndex:   0,
			prepareFn:   func(t *testing.T, d *deps) { t.Helper() },
			expectedErr: model.ErrUnknownItem,
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			d := newDeps(ctrl)
			tt.prepareFn(t, d)
			c := d.coordinator(t, Options{StrictBalanceCheck: tt.strict})

			boc, err := c.Buy(context.Background(), user, tt.itemIndex)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, boc)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBOC, boc)
			}
			// nothing is recorded locally either way
			assert.Equal(t, 0, c.Equipped())
			assert.Empty(t, c.Purchases().Purchases)
		})
	}
}

func TestCoordinator_SubmitPlayed(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name      string
		prepareFn func(t *testing.T, d *deps)
		expected  model.PlayedResult
	}

	tests := []testCase{
		{
			name: "reward with achievement",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.ledger.EXPECT().
					Played(gomock.Any(), model.PlayedRequest{TgData: testInit, Wallet: testOwner, Score: 7}).
					Return(&model.PlayedResponse{OK: true, Reward: 50, Achievements: []string{"first-time"}}, nil).
					Times(1)
			},
			expected: model.Reward{Amount: 50, Achievements: []string{"Played 1 time"}},
		},
		{
			name: "unknown achievement id kept",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.ledger.EXPECT().
					Played(gomock.Any(), gomock.Any()).
					Return(&model.PlayedResponse{OK: true, Reward: 5, Achievements: []string{"five-times", "ten-times"}}, nil).
					Times(1)
			},
			expected: model.Reward{Amount: 5, Achievements: []string{"Played 5 times", "ten-times"}},
		},
		{
			name: "ledger unreachable",
			prepareFn: func(t *testing.T, d *deps) {
				t.Helper()
				d.wallet.EXPECT().Session().Return(connected)
				d.ledger.EXPECT().
					Played(gomock.Any(), gomock.Any()).
					Return(nil, model.ErrLedgerUnreachable).
					Times(1)
			},
			expected: model.Failure{Reason: "Could not load your rewards information"},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			d := newDeps(ctrl)
			tt.prepareFn(t, d)
			c := d.coordinator(t, Options{})

			assert.Equal(t, tt.expected, c.SubmitPlayed(context.Background(), testInit, 7))
		})
	}
}

func TestCoordinator_ShopRefresh(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	c := d.coordinator(t, Options{})

	gomock.InOrder(
		d.ledger.EXPECT().Purchases(gomock.Any(), testInit).
			Return([]model.PurchaseRecord{{SystemName: "pipe-red"}}, nil),
		d.ledger.EXPECT().Purchases(gomock.Any(), testInit).
			Return(nil, model.ErrLedgerUnreachable),
		d.ledger.EXPECT().Purchases(gomock.Any(), testInit).
			Return([]model.PurchaseRecord{{SystemName: "pipe-red"}, {SystemName: "pipe-blue"}}, nil),
	)

	view, err := c.OpenShop(context.Background(), testInit)
	require.NoError(t, err)
	assert.Equal(t, []model.PurchaseRecord{{SystemName: "pipe-red"}}, view.Purchases)
	assert.Len(t, view.Items, 3)
	assert.False(t, view.Stale)

	err = c.RefreshPurchases(context.Background(), testInit)
	assert.ErrorIs(t, err, model.ErrLedgerUnreachable)
	view = c.Purchases()
	assert.Equal(t, []model.PurchaseRecord{{SystemName: "pipe-red"}}, view.Purchases)
	assert.True(t, view.Stale)

	require.NoError(t, c.RefreshPurchases(context.Background(), testInit))
	view = c.Purchases()
	assert.Len(t, view.Purchases, 2)
	assert.False(t, view.Stale)
}

func TestCoordinator_OpenShopFails(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	d.wallet.EXPECT().Session().Return(connected).AnyTimes()
	d.ledger.EXPECT().Purchases(gomock.Any(), testInit).Return(nil, model.ErrLedgerUnreachable).Times(1)
	c := d.coordinator(t, Options{})

	_, err := c.OpenShop(context.Background(), testInit)
	assert.ErrorIs(t, err, model.ErrLedgerUnreachable)
	assert.False(t, c.View().ShopVisible)
}

func TestCoordinator_RefreshAfterCloseIsDiscarded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	c := d.coordinator(t, Options{})

	gomock.InOrder(
		d.ledger.EXPECT().Purchases(gomock.Any(), testInit).
			Return([]model.PurchaseRecord{{SystemName: "pipe-red"}}, nil),
		d.ledger.EXPECT().Purchases(gomock.Any(), testInit).
			DoAndReturn(func(context.Context, string) ([]model.PurchaseRecord, error) {
				c.CloseShop()
				return []model.PurchaseRecord{{SystemName: "pipe-blue"}}, nil
			}),
	)

	_, err := c.OpenShop(context.Background(), testInit)
	require.NoError(t, err)

	require.NoError(t, c.RefreshPurchases(context.Background(), testInit))
	assert.Equal(t, []model.PurchaseRecord{{SystemName: "pipe-red"}}, c.Purchases().Purchases)
}

func TestCoordinator_ShopReloadsWhileOpen(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	c := d.coordinator(t, Options{ShopReloadInterval: 10 * time.Millisecond})

	d.ledger.EXPECT().Purchases(gomock.Any(), testInit).Return([]model.PurchaseRecord{}, nil).Times(1)
	d.ledger.EXPECT().Purchases(gomock.Any(), testInit).Return([]model.PurchaseRecord{{SystemName: "pipe-red"}}, nil).AnyTimes()

	_, err := c.OpenShop(context.Background(), testInit)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(c.Purchases().Purchases) == 1
	}, time.Second, 5*time.Millisecond)
	c.CloseShop()
}

func TestCoordinator_Equip(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	c := d.coordinator(t, Options{})
	ctx := context.Background()

	assert.ErrorIs(t, c.Equip(ctx, 1), model.ErrItemNotOwned)
	assert.ErrorIs(t, c.Equip(ctx, 5), model.ErrUnknownItem)
	assert.Equal(t, 0, c.Equipped())

	d.ledger.EXPECT().Purchases(gomock.Any(), testInit).Return([]model.PurchaseRecord{{SystemName: "pipe-red"}}, nil)
	_, err := c.OpenShop(ctx, testInit)
	require.NoError(t, err)

	require.NoError(t, c.Equip(ctx, 1))
	assert.Equal(t, 1, c.Equipped())

	raw, err := d.store.Get(ctx, storage.KeyChosenItem)
	require.NoError(t, err)
	assert.Equal(t, "1", string(raw))

	// a fresh coordinator over the same store picks the choice up
	restored := NewCoordinator(d.wallet, d.builder, d.balances, d.ledger, d.store, Options{Catalog: testCatalog}, zap.NewNop())
	index, err := restored.LoadEquipped(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	require.NoError(t, c.Equip(ctx, 0))
	assert.Equal(t, 0, c.Equipped())
}

func TestCoordinator_LoadEquippedInvalid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	require.NoError(t, d.store.Set(context.Background(), storage.KeyChosenItem, []byte("17")))
	c := d.coordinator(t, Options{})

	index, err := c.LoadEquipped(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestView(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.View{ConnectControl: model.PlacementCenter}, View(disconnected))
	assert.Equal(t, model.View{ConnectControl: model.PlacementCenter}, View(model.WalletSession{Status: model.StatusConnecting}))
	assert.Equal(t, model.View{
		GameMode:       true,
		BalanceVisible: true,
		ConnectControl: model.PlacementCorner,
	}, View(connected))
}

func TestCoordinator_ViewFollowsSession(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	d := newDeps(ctrl)
	c := d.coordinator(t, Options{})

	gomock.InOrder(
		d.wallet.EXPECT().Session().Return(disconnected),
		d.wallet.EXPECT().Session().Return(connected),
		d.wallet.EXPECT().Session().Return(connected),
	)
	d.ledger.EXPECT().Purchases(gomock.Any(), testInit).Return([]model.PurchaseRecord{}, nil)

	v := c.View()
	assert.False(t, v.GameMode)
	assert.Equal(t, model.PlacementCenter, v.ConnectControl)

	v = c.View()
	assert.True(t, v.GameMode)
	assert.False(t, v.ShopVisible)

	_, err := c.OpenShop(context.Background(), testInit)
	require.NoError(t, err)
	assert.True(t, c.View().ShopVisible)

	c.OnStatusChange(model.StatusEvent{From: model.StatusConnected, To: model.StatusDisconnected})
	c.mu.Lock()
	open := c.shopOpen
	c.mu.Unlock()
	assert.False(t, open)
}
