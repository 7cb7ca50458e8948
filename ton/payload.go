package ton

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// Operation codes (TEP-62 NFT, TEP-74 jetton, text comment)
const (
	OpNftTransfer    = 0x5fcc3d14
	OpJettonTransfer = 0x0f8a7ea5
	OpTextComment    = 0x00000000
)

// NftTransfer is the decoded NFT transfer instruction
type NftTransfer struct {
	QueryID             uint64
	NewOwner            *address.Address
	ResponseDestination *address.Address
	ForwardAmount       *big.Int
}

// TokenTransfer is the decoded jetton transfer instruction
type TokenTransfer struct {
	QueryID             uint64
	Amount              *big.Int
	Destination         *address.Address
	ResponseDestination *address.Address
	ForwardAmount       *big.Int
	ForwardPayload      *cell.Cell
}

// NftTransferPayload builds the transfer instruction sent to an NFT item
func NftTransferPayload(queryID uint64, newOwner, responseDestination *address.Address, forwardAmount *big.Int) *cell.Cell {
	return cell.BeginCell().
		MustStoreUInt(OpNftTransfer, 32).
		MustStoreUInt(queryID, 64).
		MustStoreAddr(newOwner).
		MustStoreAddr(responseDestination).
		MustStoreMaybeRef(nil). // no custom payload
		MustStoreBigCoins(forwardAmount).
		MustStoreBoolBit(false). // empty inline forward payload
		EndCell()
}

// TokenTransferPayload builds the transfer instruction sent to the sender's jetton wallet
func TokenTransferPayload(queryID uint64, amount *big.Int, destination, responseDestination *address.Address, forwardAmount *big.Int, forwardPayload *cell.Cell) *cell.Cell {
	b := cell.BeginCell().
		MustStoreUInt(OpJettonTransfer, 32).
		MustStoreUInt(queryID, 64).
		MustStoreBigCoins(amount).
		MustStoreAddr(destination).
		MustStoreAddr(responseDestination).
		MustStoreMaybeRef(nil). // no custom payload
		MustStoreBigCoins(forwardAmount)

	if forwardPayload == nil {
		b.MustStoreBoolBit(false)
	} else {
		b.MustStoreBoolBit(true).MustStoreRef(forwardPayload)
	}
	return b.EndCell()
}

// EncodeCorrelationTag encodes the tag as a text comment "<userId>:<itemId>"
func EncodeCorrelationTag(tag model.CorrelationTag) *cell.Cell {
	return cell.BeginCell().
		MustStoreUInt(OpTextComment, 32).
		MustStoreStringSnake(tag.String()).
		EndCell()
}

// DecodeCorrelationTag reverses EncodeCorrelationTag
func DecodeCorrelationTag(c *cell.Cell) (model.CorrelationTag, error) {
	var tag model.CorrelationTag
	if c == nil {
		return tag, fmt.Errorf("empty correlation payload")
	}

	s := c.BeginParse()
	op, err := s.LoadUInt(32)
	if err != nil {
		return tag, fmt.Errorf("failed to load op: %w", err)
	}
	if op != OpTextComment {
		return tag, fmt.Errorf("unexpected op 0x%x", op)
	}

	text, err := s.LoadStringSnake()
	if err != nil {
		return tag, fmt.Errorf("failed to load comment: %w", err)
	}

	userPart, itemPart, ok := strings.Cut(text, ":")
	if !ok {
		return tag, fmt.Errorf("malformed correlation tag %q", text)
	}
	tag.UserID, err = strconv.ParseInt(userPart, 10, 64)
	if err != nil {
		return tag, fmt.Errorf("malformed user id in %q: %w", text, err)
	}
	tag.ItemID, err = strconv.Atoi(itemPart)
	if err != nil {
		return tag, fmt.Errorf("malformed item id in %q: %w", text, err)
	}
	return tag, nil
}

// EncodeBOC serializes a cell the way TON Connect messages carry it
func EncodeBOC(c *cell.Cell) string {
	return base64.StdEncoding.EncodeToString(c.ToBOC())
}

// DecodeBOC parses a base64 BOC
func DecodeBOC(payload string) (*cell.Cell, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	c, err := cell.FromBOC(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse boc: %w", err)
	}
	return c, nil
}

// DecodeNftTransfer parses a base64 NFT transfer payload
func DecodeNftTransfer(payload string) (*NftTransfer, error) {
	c, err := DecodeBOC(payload)
	if err != nil {
		return nil, err
	}

	s := c.BeginParse()
	op, err := s.LoadUInt(32)
	if err != nil {
		return nil, fmt.Errorf("failed to load op: %w", err)
	}
	if op != OpNftTransfer {
		return nil, fmt.Errorf("unexpected op 0x%x", op)
	}

	var out NftTransfer
	if out.QueryID, err = s.LoadUInt(64); err != nil {
		return nil, fmt.Errorf("failed to load query id: %w", err)
	}
	if out.NewOwner, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("failed to load new owner: %w", err)
	}
	if out.ResponseDestination, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("failed to load response destination: %w", err)
	}
	if _, err = s.LoadMaybeRef(); err != nil {
		return nil, fmt.Errorf("failed to load custom payload: %w", err)
	}
	if out.ForwardAmount, err = s.LoadBigCoins(); err != nil {
		return nil, fmt.Errorf("failed to load forward amount: %w", err)
	}
	return &out, nil
}

// DecodeTokenTransfer parses a base64 jetton transfer payload
func DecodeTokenTransfer(payload string) (*TokenTransfer, error) {
	c, err := DecodeBOC(payload)
	if err != nil {
		return nil, err
	}

	s := c.BeginParse()
	op, err := s.LoadUInt(32)
	if err != nil {
		return nil, fmt.Errorf("failed to load op: %w", err)
	}
	if op != OpJettonTransfer {
		return nil, fmt.Errorf("unexpected op 0x%x", op)
	}

	var out TokenTransfer
	if out.QueryID, err = s.LoadUInt(64); err != nil {
		return nil, fmt.Errorf("failed to load query id: %w", err)
	}
	if out.Amount, err = s.LoadBigCoins(); err != nil {
		return nil, fmt.Errorf("failed to load amount: %w", err)
	}
	if out.Destination, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if out.ResponseDestination, err = s.LoadAddr(); err != nil {
		return nil, fmt.Errorf("failed to load response destination: %w", err)
	}
	if _, err = s.LoadMaybeRef(); err != nil {
		return nil, fmt.Errorf("failed to load custom payload: %w", err)
	}
	if out.ForwardAmount, err = s.LoadBigCoins(); err != nil {
		return nil, fmt.Errorf("failed to load forward amount: %w", err)
	}

	inRef, err := s.LoadBoolBit()
	if err != nil {
		return nil, fmt.Errorf("failed to load forward payload flag: %w", err)
	}
	if inRef {
		ref, err := s.LoadRef()
		if err != nil {
			return nil, fmt.Errorf("failed to load forward payload: %w", err)
		}
		if out.ForwardPayload, err = ref.ToCell(); err != nil {
			return nil, fmt.Errorf("failed to read forward payload: %w", err)
		}
	}
	return &out, nil
}
