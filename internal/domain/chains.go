package domain

import "strings"

const (
	ChainDistributor = "distributor-chain"
	ChainRetailer    = "retailer-chain"
	ChainMain        = "main-chain"
)

// NormalizeChainName maps user-supplied chain identifiers (short or full
// form, any case) to the canonical chain name.
func NormalizeChainName(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "distributor", "distributor-chain":
		return ChainDistributor, nil
	case "retailer", "retailer-chain":
		return ChainRetailer, nil
	case "main", "main-chain":
		return ChainMain, nil
	default:
		return "", ErrUnknownChain
	}
}

func IsSidechain(name string) bool {
	return name == ChainDistributor || name == ChainRetailer
}

func AllChains() []string {
	return []string{ChainDistributor, ChainRetailer, ChainMain}
}

func Sidechains() []string {
	return []string{ChainDistributor, ChainRetailer}
}
