package models

import "time"

// MembershipResult is the outcome of an on-chain membership check. Balance
// and TokenID are only meaningful when IsMember is true.
type MembershipResult struct {
	IsMember bool   `json:"isMember"`
	Address  string `json:"address"`
	Balance  uint64 `json:"balance,omitempty"`
	TokenID  uint64 `json:"tokenId,omitempty"`
}

// RedemptionRecord marks a wallet as having claimed the welcome package.
// Keyed by lowercased address in the ledger.
type RedemptionRecord struct {
	Address    string    `json:"address"`
	RedeemedAt time.Time `json:"redeemedAt"`
}
