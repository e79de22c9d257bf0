// internal/service/receive.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

var ethStyleAddress = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// GenerateAddress returns a fresh synthetic receive address: "0x" followed
// by 20 random bytes in lowercase hex. Nothing on any chain backs it.
func GenerateAddress() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate address: %w", err)
	}
	return "0x" + hex.EncodeToString(buf), nil
}

// RecipientInfo is the live feedback shown while a recipient address is
// being typed.
type RecipientInfo struct {
	Length   int    `json:"length"`
	EthStyle bool   `json:"ethStyle"`
	Hint     string `json:"hint"`
}

// InspectRecipient classifies a candidate recipient address for display.
func InspectRecipient(address string) RecipientInfo {
	info := RecipientInfo{Length: len(address)}
	switch {
	case ethStyleAddress.MatchString(address):
		info.EthStyle = true
		info.Hint = "Looks like valid ETH-style"
	case len(address) > 1 && address[0:2] == "0x":
		info.Hint = "Invalid length (expect 42)"
	}
	return info
}
