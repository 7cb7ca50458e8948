package model

import "math/big"

// NftContent is the decoded part of NFT metadata we understand
type NftContent struct {
	URI         string `json:"uri,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// NftItemRecord is a snapshot of an NFT item's get-method data
type NftItemRecord struct {
	Address           string      `json:"address"`
	Initialized       bool        `json:"initialized"`
	Index             *big.Int    `json:"index"`
	CollectionAddress string      `json:"collectionAddress,omitempty"`
	OwnerAddress      string      `json:"ownerAddress,omitempty"`
	IndividualContent *NftContent `json:"individualContent,omitempty"`
}

// NftCollectionRecord is a snapshot of an NFT collection's get-method data
type NftCollectionRecord struct {
	Address       string      `json:"address"`
	NextItemIndex *big.Int    `json:"nextItemIndex"`
	OwnerAddress  string      `json:"ownerAddress,omitempty"`
	Content       *NftContent `json:"content,omitempty"`
}

// TokenWalletRecord is a jetton wallet snapshot. Balance is in base units.
type TokenWalletRecord struct {
	Address       string   `json:"address"`
	OwnerAddress  string   `json:"ownerAddress"`
	MasterAddress string   `json:"masterAddress"`
	Balance       *big.Int `json:"balance"`
}

// NftAddressResponse represents response for GET /nft/collection/{address}/items/{index}
type NftAddressResponse struct {
	Address string `json:"address"`
}

// BalanceResponse represents response for GET /balance
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"` // human units
	Raw     string `json:"raw"`     // base units
}
