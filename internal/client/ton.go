package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/xssnick/tonutils-go/liteclient"
	tonlite "github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/jetton"
	"github.com/xssnick/tonutils-go/ton/nft"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AlexZinkM/ton-gamefi/internal/metrics"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/ton"
)

// TonClient resolves read-only contract state through liteservers.
// It keeps no cache: every call is one round trip.
type TonClient struct {
	api     tonlite.APIClientWrapped
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewTonClient connects to the liteservers listed in the global config at configURL
func NewTonClient(ctx context.Context, configURL string, rps float64, logger *zap.Logger) (*TonClient, error) {
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, configURL); err != nil {
		return nil, fmt.Errorf("failed to connect to liteservers: %w", err)
	}

	return &TonClient{
		api:     tonlite.NewAPIClient(pool).WithRetry(),
		limiter: newLimiter(rps),
		logger:  logger,
	}, nil
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// GetNftItemData gets NFT item data
func (c *TonClient) GetNftItemData(ctx context.Context, address string) (*model.NftItemRecord, error) {
	addr, err := ton.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrChainQueryFailed, err)
	}

	var data *nft.ItemData
	err = c.query(ctx, "get_nft_data", func(ctx context.Context) error {
		data, err = nft.NewItemClient(c.api, addr).GetNFTData(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	record := &model.NftItemRecord{
		Address:           addr.String(),
		Initialized:       data.Initialized,
		Index:             data.Index,
		IndividualContent: convertContent(data.Content),
	}
	if data.CollectionAddress != nil {
		record.CollectionAddress = data.CollectionAddress.String()
	}
	if data.OwnerAddress != nil {
		record.OwnerAddress = data.OwnerAddress.String()
	}
	return record, nil
}

// GetNftCollectionData gets NFT collection data
func (c *TonClient) GetNftCollectionData(ctx context.Context, address string) (*model.NftCollectionRecord, error) {
	addr, err := ton.ParseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrChainQueryFailed, err)
	}

	var data *nft.CollectionData
	err = c.query(ctx, "get_collection_data", func(ctx context.Context) error {
		data, err = nft.NewCollectionClient(c.api, addr).GetCollectionData(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	record := &model.NftCollectionRecord{
		Address:       addr.String(),
		NextItemIndex: data.NextItemIndex,
		Content:       convertContent(data.Content),
	}
	if data.OwnerAddress != nil {
		record.OwnerAddress = data.OwnerAddress.String()
	}
	return record, nil
}

// GetNftAddressByIndex gets the address of the collection item with index
func (c *TonClient) GetNftAddressByIndex(ctx context.Context, collection string, index *big.Int) (string, error) {
	addr, err := ton.ParseAddress(collection)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrChainQueryFailed, err)
	}
	if index == nil || index.Sign() < 0 {
		return "", fmt.Errorf("%w: invalid index", model.ErrChainQueryFailed)
	}

	var itemAddr string
	err = c.query(ctx, "get_nft_address_by_index", func(ctx context.Context) error {
		a, err := nft.NewCollectionClient(c.api, addr).GetNFTAddressByIndex(ctx, index)
		if err != nil {
			return err
		}
		itemAddr = a.String()
		return nil
	})
	return itemAddr, err
}

// GetTokenWalletAddress gets the owner's jetton wallet address for the master
func (c *TonClient) GetTokenWalletAddress(ctx context.Context, owner, master string) (string, error) {
	wallet, err := c.tokenWallet(ctx, owner, master)
	if err != nil {
		return "", err
	}
	return wallet.Address().String(), nil
}

// GetTokenWalletData gets the owner's jetton wallet with its balance (base units)
func (c *TonClient) GetTokenWalletData(ctx context.Context, owner, master string) (*model.TokenWalletRecord, error) {
	wallet, err := c.tokenWallet(ctx, owner, master)
	if err != nil {
		return nil, err
	}

	var balance *big.Int
	err = c.query(ctx, "get_wallet_data", func(ctx context.Context) error {
		balance, err = wallet.GetBalance(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.TokenWalletRecord{
		Address:       wallet.Address().String(),
		OwnerAddress:  owner,
		MasterAddress: master,
		Balance:       balance,
	}, nil
}

func (c *TonClient) tokenWallet(ctx context.Context, owner, master string) (*jetton.WalletClient, error) {
	ownerAddr, err := ton.ParseAddress(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %w", model.ErrChainQueryFailed, err)
	}
	masterAddr, err := ton.ParseAddress(master)
	if err != nil {
		return nil, fmt.Errorf("%w: master: %w", model.ErrChainQueryFailed, err)
	}

	var wallet *jetton.WalletClient
	err = c.query(ctx, "get_wallet_address", func(ctx context.Context) error {
		wallet, err = jetton.NewJettonMasterClient(c.api, masterAddr).GetJettonWallet(ctx, ownerAddr)
		return err
	})
	return wallet, err
}

// query throttles, times and wraps one chain round trip
func (c *TonClient) query(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %s: %w", model.ErrChainQueryFailed, method, err)
	}

	start := time.Now()
	err := fn(ctx)
	metrics.ObserveChainQuery(method, time.Since(start), err)
	if err != nil {
		c.logger.Debug("chain query failed", zap.String("method", method), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", model.ErrChainQueryFailed, method, err)
	}
	return nil
}

// convertContent keeps the metadata fields the game uses
func convertContent(content nft.ContentAny) *model.NftContent {
	switch v := content.(type) {
	case *nft.ContentSemichain:
		return &model.NftContent{
			URI:         v.ContentOffchain.URI,
			Name:        v.ContentOnchain.Name,
			Description: v.ContentOnchain.Description,
			Image:       v.ContentOnchain.Image,
		}
	case *nft.ContentOffchain:
		return &model.NftContent{URI: v.URI}
	case *nft.ContentOnchain:
		return &model.NftContent{Name: v.Name, Description: v.Description, Image: v.Image}
	}
	return nil
}
