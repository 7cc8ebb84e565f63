package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"custodial-vault-platform/internal/core/domain"
	"custodial-vault-platform/pkg/apperror"
)

// ChainSimService implements ports.AddressService with simulated,
// format-faithful chain artifacts. No network, no keys: format rules are a
// per-blockchain lookup table.
type ChainSimService struct{}

// NewChainSimService creates a new ChainSimService.
func NewChainSimService() *ChainSimService {
	return &ChainSimService{}
}

type chainFormat struct {
	addressPrefix string
	addressHexLen int
	hashPrefix    string
}

var chainFormats = map[domain.BlockchainType]chainFormat{
	domain.BlockchainBitcoin:  {addressPrefix: "bc1q", addressHexLen: 38},
	domain.BlockchainEthereum: {addressPrefix: "0x", addressHexLen: 40, hashPrefix: "0x"},
	domain.BlockchainGeneric:  {addressPrefix: "sim1", addressHexLen: 32},
}

// GenerateAddress mints a fresh deposit address in the asset's format.
func (s *ChainSimService) GenerateAddress(assetID string) (string, error) {
	asset, ok := domain.LookupAsset(assetID)
	if !ok {
		return "", apperror.ErrNotFound("asset")
	}
	f := chainFormats[asset.Blockchain]
	return f.addressPrefix + randomHex(f.addressHexLen), nil
}

// ValidateAddress checks an address string against the asset's format.
func (s *ChainSimService) ValidateAddress(assetID string, address string) bool {
	asset, ok := domain.LookupAsset(assetID)
	if !ok {
		return false
	}
	f := chainFormats[asset.Blockchain]
	if !strings.HasPrefix(address, f.addressPrefix) {
		return false
	}
	body := address[len(f.addressPrefix):]
	if len(body) != f.addressHexLen {
		return false
	}
	return isHex(body)
}

// GenerateTransactionHash produces a chain-specific transaction hash.
func (s *ChainSimService) GenerateTransactionHash(assetID string, blockchain domain.BlockchainType) (string, error) {
	if _, ok := domain.LookupAsset(assetID); !ok {
		return "", apperror.ErrNotFound("asset")
	}
	f, ok := chainFormats[blockchain]
	if !ok {
		return "", apperror.Validation(fmt.Sprintf("unknown blockchain type %q", blockchain))
	}
	return f.hashPrefix + randomHex(64), nil
}

func randomHex(n int) string {
	buf := make([]byte, (n+1)/2)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)[:n]
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return len(s) > 0
}
