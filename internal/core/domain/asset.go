package domain

import "github.com/shopspring/decimal"

// BlockchainType selects the simulated address/hash format for an asset.
type BlockchainType string

const (
	BlockchainBitcoin  BlockchainType = "BITCOIN"
	BlockchainEthereum BlockchainType = "ETHEREUM"
	BlockchainGeneric  BlockchainType = "GENERIC"
)

// Asset describes a supported digital asset. FeeAssetID is the asset network
// fees are charged in; for tokens it differs from the asset itself.
type Asset struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Decimals     int32           `json:"decimals"`
	Blockchain   BlockchainType  `json:"blockchain"`
	SupportsUTXO bool            `json:"supports_utxo"`
	FeeAssetID   string          `json:"fee_asset_id"`
	BaseFee      decimal.Decimal `json:"base_fee"`
}

// assetRegistry is the closed set of supported assets. Real chains are out of
// scope, so the registry lives in code rather than behind a repository.
var assetRegistry = map[string]Asset{
	"BTC": {
		ID: "BTC", Name: "Bitcoin", Decimals: 8,
		Blockchain: BlockchainBitcoin, SupportsUTXO: true,
		FeeAssetID: "BTC", BaseFee: decimal.RequireFromString("0.0002"),
	},
	"ETH": {
		ID: "ETH", Name: "Ethereum", Decimals: 18,
		Blockchain: BlockchainEthereum,
		FeeAssetID: "ETH", BaseFee: decimal.RequireFromString("0.0005"),
	},
	"USDC": {
		ID: "USDC", Name: "USD Coin", Decimals: 6,
		Blockchain: BlockchainEthereum,
		FeeAssetID: "ETH", BaseFee: decimal.RequireFromString("0.0005"),
	},
	"SOL": {
		ID: "SOL", Name: "Solana", Decimals: 9,
		Blockchain: BlockchainGeneric,
		FeeAssetID: "SOL", BaseFee: decimal.RequireFromString("0.00001"),
	},
}

// LookupAsset returns the asset definition for an id.
func LookupAsset(assetID string) (Asset, bool) {
	a, ok := assetRegistry[assetID]
	return a, ok
}

// SupportedAssets returns all registered assets.
func SupportedAssets() []Asset {
	out := make([]Asset, 0, len(assetRegistry))
	for _, a := range assetRegistry {
		out = append(out, a)
	}
	return out
}
