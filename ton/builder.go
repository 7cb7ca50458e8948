package ton

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/AlexZinkM/ton-gamefi/internal/common"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

var (
	// NftTransferFeePrepay covers the NFT contract's processing fee
	NftTransferFeePrepay = tlb.MustFromTON("0.05").Nano()
	// TokenTransferGas is attached to a jetton transfer for the jetton wallets' fees
	TokenTransferGas = tlb.MustFromTON("0.05").Nano()
	// TokenForwardAmount is forwarded to the recipient with the transfer notification
	TokenForwardAmount = big.NewInt(1)
)

// DefaultTransactionTTL is how long a built request stays valid
const DefaultTransactionTTL = 3600 * time.Second

// TokenWalletLocator resolves an owner's jetton wallet address
type TokenWalletLocator interface {
	GetTokenWalletAddress(ctx context.Context, owner, master string) (string, error)
}

// BuilderOptions configures a Builder
type BuilderOptions struct {
	TTL            time.Duration
	Network        string // TON Connect chain id, e.g. "-239"
	TokenRecipient string // merchant address receiving jetton purchases
}

// Builder constructs transaction requests for the wallet
type Builder struct {
	locator   TokenWalletLocator
	ttl       time.Duration
	network   string
	recipient string
	now       func() time.Time
}

// NewBuilder creates a Builder. TTL below one second falls back to DefaultTransactionTTL.
func NewBuilder(locator TokenWalletLocator, opts BuilderOptions) *Builder {
	ttl := opts.TTL
	if ttl < time.Second {
		ttl = DefaultTransactionTTL
	}
	return &Builder{
		locator:   locator,
		ttl:       ttl,
		network:   opts.Network,
		recipient: opts.TokenRecipient,
		now:       time.Now,
	}
}

// WithClock replaces the clock, used by tests
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// TTL returns the validity window of built requests
func (b *Builder) TTL() time.Duration {
	return b.ttl
}

// BuildPayment builds a plain TON transfer. amount is in TON, e.g. "1.5".
func (b *Builder) BuildPayment(destination, amount string) (*model.TransactionRequest, error) {
	to, err := ParseAddress(destination)
	if err != nil {
		return nil, err
	}

	nano, err := common.TONToNano(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if nano.Sign() == 0 {
		return nil, fmt.Errorf("invalid amount: must be positive")
	}

	return b.request(model.Message{
		Address: to.String(),
		Amount:  nano.String(),
	}), nil
}

// BuildNftTransfer builds a transfer of the NFT at nftAddress to a new owner.
// Excess TON is returned to responseDestination.
func (b *Builder) BuildNftTransfer(nftAddress, to, responseDestination string) (*model.TransactionRequest, error) {
	nft, err := ParseAddress(nftAddress)
	if err != nil {
		return nil, fmt.Errorf("nft: %w", err)
	}
	newOwner, err := ParseAddress(to)
	if err != nil {
		return nil, fmt.Errorf("new owner: %w", err)
	}
	response, err := ParseAddress(responseDestination)
	if err != nil {
		return nil, fmt.Errorf("response destination: %w", err)
	}

	payload := NftTransferPayload(b.queryID(), newOwner, response, big.NewInt(0))

	return b.request(model.Message{
		Address: nft.String(),
		Amount:  NftTransferFeePrepay.String(),
		Payload: EncodeBOC(payload),
	}), nil
}

// BuildTokenTransfer builds a jetton transfer of amount base units from the owner's
// jetton wallet to the merchant recipient, carrying forwardPayload (the correlation tag).
// It performs one chain read; its error is returned unchanged.
func (b *Builder) BuildTokenTransfer(ctx context.Context, amount *big.Int, forwardPayload *cell.Cell, masterAddress, ownerAddress string) (*model.TransactionRequest, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, fmt.Errorf("invalid amount: must be positive")
	}
	owner, err := ParseAddress(ownerAddress)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	recipient, err := ParseAddress(b.recipient)
	if err != nil {
		return nil, fmt.Errorf("recipient: %w", err)
	}
	if _, err := ParseAddress(masterAddress); err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}

	tokenWallet, err := b.locator.GetTokenWalletAddress(ctx, ownerAddress, masterAddress)
	if err != nil {
		return nil, err
	}

	payload := TokenTransferPayload(b.queryID(), amount, recipient, owner, TokenForwardAmount, forwardPayload)

	return b.request(model.Message{
		Address: tokenWallet,
		Amount:  TokenTransferGas.String(),
		Payload: EncodeBOC(payload),
	}), nil
}

func (b *Builder) request(msgs ...model.Message) *model.TransactionRequest {
	return &model.TransactionRequest{
		ValidUntil: b.now().Add(b.ttl).Unix(),
		Network:    b.network,
		Messages:   msgs,
	}
}

func (b *Builder) queryID() uint64 {
	return uint64(b.now().UnixNano())
}
