package ton

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xssnick/tonutils-go/address"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

func testAddr(seed byte) *address.Address {
	data := make([]byte, 32)
	for i := range data {
		data[i] = seed
	}
	return address.NewAddress(0, 0, data)
}

type stubLocator struct {
	wallet string
	err    error
	calls  int
}

func (s *stubLocator) GetTokenWalletAddress(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.wallet, s.err
}

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 700_000_000, time.UTC)

func newTestBuilder(locator TokenWalletLocator) *Builder {
	return NewBuilder(locator, BuilderOptions{
		TTL:            time.Hour,
		Network:        "-239",
		TokenRecipient: testAddr(9).String(),
	}).WithClock(func() time.Time { return fixedNow })
}

func assertValidWindow(t *testing.T, req *model.TransactionRequest, ttl time.Duration) {
	t.Helper()
	validUntil := time.Unix(req.ValidUntil, 0)
	assert.True(t, validUntil.After(fixedNow), "valid until must be after now")
	assert.False(t, validUntil.After(fixedNow.Add(ttl)), "valid until must be within ttl")
}

func TestBuilder_BuildPayment(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(&stubLocator{})
	to := testAddr(1)

	req, err := b.BuildPayment(to.String(), "1.5")
	require.NoError(t, err)
	require.Len(t, req.Messages, 1)

	msg := req.Messages[0]
	assert.Equal(t, to.String(), msg.Address)
	assert.Equal(t, "1500000000", msg.Amount)
	assert.Empty(t, msg.Payload)
	assert.Equal(t, "-239", req.Network)
	assertValidWindow(t, req, time.Hour)
	assert.NoError(t, req.Validate(fixedNow))
}

func TestBuilder_BuildPaymentInvalid(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(&stubLocator{})

	_, err := b.BuildPayment("not-an-address", "1")
	assert.Error(t, err)

	_, err = b.BuildPayment(testAddr(1).String(), "0.0000000001")
	assert.Error(t, err)

	_, err = b.BuildPayment(testAddr(1).String(), "0")
	assert.Error(t, err)
}

func TestBuilder_BuildNftTransfer(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(&stubLocator{})
	nft, to, back := testAddr(2), testAddr(3), testAddr(4)

	req, err := b.BuildNftTransfer(nft.String(), to.String(), back.StringRaw())
	require.NoError(t, err)
	require.Len(t, req.Messages, 1)

	msg := req.Messages[0]
	assert.Equal(t, nft.String(), msg.Address)
	assert.Equal(t, "50000000", msg.Amount)
	assertValidWindow(t, req, time.Hour)

	transfer, err := DecodeNftTransfer(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, to.StringRaw(), transfer.NewOwner.StringRaw())
	assert.Equal(t, back.StringRaw(), transfer.ResponseDestination.StringRaw())
	assert.Equal(t, uint64(fixedNow.UnixNano()), transfer.QueryID)
	assert.Zero(t, transfer.ForwardAmount.Sign())
}

func TestBuilder_BuildTokenTransfer(t *testing.T) {
	t.Parallel()

	jettonWallet := testAddr(5).String()
	locator := &stubLocator{wallet: jettonWallet}
	b := newTestBuilder(locator)
	owner, master := testAddr(6), testAddr(7)
	tag := model.CorrelationTag{UserID: 123456789, ItemID: 2}

	req, err := b.BuildTokenTransfer(context.Background(), big.NewInt(80), EncodeCorrelationTag(tag), master.String(), owner.String())
	require.NoError(t, err)
	assert.Equal(t, 1, locator.calls)
	require.Len(t, req.Messages, 1)

	msg := req.Messages[0]
	assert.Equal(t, jettonWallet, msg.Address)
	assert.Equal(t, TokenTransferGas.String(), msg.Amount)
	assertValidWindow(t, req, time.Hour)

	transfer, err := DecodeTokenTransfer(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, "80", transfer.Amount.String())
	assert.Equal(t, testAddr(9).StringRaw(), transfer.Destination.StringRaw())
	assert.Equal(t, owner.StringRaw(), transfer.ResponseDestination.StringRaw())
	assert.Equal(t, "1", transfer.ForwardAmount.String())

	decoded, err := DecodeCorrelationTag(transfer.ForwardPayload)
	require.NoError(t, err)
	assert.Equal(t, tag, decoded)
}

func TestBuilder_BuildTokenTransferPropagatesChainError(t *testing.T) {
	t.Parallel()

	queryErr := fmt.Errorf("%w: liteserver timeout", model.ErrChainQueryFailed)
	b := newTestBuilder(&stubLocator{err: queryErr})

	_, err := b.BuildTokenTransfer(context.Background(), big.NewInt(80), nil, testAddr(7).String(), testAddr(6).String())
	assert.Same(t, queryErr, err)
	assert.ErrorIs(t, err, model.ErrChainQueryFailed)
}

func TestBuilder_BuildTokenTransferInvalidAmount(t *testing.T) {
	t.Parallel()

	locator := &stubLocator{wallet: testAddr(5).String()}
	b := newTestBuilder(locator)

	_, err := b.BuildTokenTransfer(context.Background(), big.NewInt(0), nil, testAddr(7).String(), testAddr(6).String())
	assert.Error(t, err)
	assert.Zero(t, locator.calls)
}

func TestBuilder_DefaultTTL(t *testing.T) {
	t.Parallel()

	b := NewBuilder(&stubLocator{}, BuilderOptions{}).WithClock(func() time.Time { return fixedNow })
	assert.Equal(t, DefaultTransactionTTL, b.TTL())

	req, err := b.BuildPayment(testAddr(1).String(), "1")
	require.NoError(t, err)
	assertValidWindow(t, req, DefaultTransactionTTL)
}
