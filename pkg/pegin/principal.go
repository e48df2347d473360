package pegin

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

// PrincipalKind discriminates the two forms a settlement-layer recipient can
// take: a standard account principal or a fully-qualified contract principal.
type PrincipalKind int

const (
	// StandardPrincipal is a plain account reference.
	StandardPrincipal PrincipalKind = iota
	// ContractPrincipal is an account reference qualified by a contract name.
	ContractPrincipal
)

const (
	standardPrincipalTag = 0x05
	contractPrincipalTag = 0x06

	principalHashSize = 20
	checksumSize      = 4
	maxContractName   = 40

	c32Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
)

var contractNameRegexp = regexp.MustCompile(`^[a-zA-Z]([a-zA-Z0-9]|[-_])*$`)

// Principal is the canonical form of a settlement-layer recipient. It is
// parsed once at the boundary; all internal logic works on the serialized
// byte form the remote signer set recomputes.
type Principal struct {
	kind         PrincipalKind
	version      byte
	hash         [principalHashSize]byte
	contractName string
	encoded      string
}

// ParsePrincipal parses a recipient reference in either the standard
// (c32check address) or contract (address.contract-name) form.
func ParsePrincipal(principal string) (Principal, error) {
	address := principal
	contractName := ""
	kind := StandardPrincipal

	if idx := strings.IndexByte(principal, '.'); idx >= 0 {
		address, contractName = principal[:idx], principal[idx+1:]
		kind = ContractPrincipal
		if len(contractName) <= 0 || len(contractName) > maxContractName ||
			!contractNameRegexp.MatchString(contractName) {
			return Principal{}, fmt.Errorf(
				"invalid contract name '%s'", contractName,
			)
		}
	}

	version, hash, err := decodeAddress(address)
	if err != nil {
		return Principal{}, err
	}

	p := Principal{
		kind:         kind,
		version:      version,
		contractName: contractName,
		encoded:      principal,
	}
	copy(p.hash[:], hash)
	return p, nil
}

// Kind returns whether the principal is standard or contract-qualified.
func (p Principal) Kind() PrincipalKind {
	return p.kind
}

// String returns the principal in the form it was parsed from.
func (p Principal) String() string {
	return p.encoded
}

/// Serialize returns the canonical byte form of the principal: a tag byte,
// the address version and hash, and for contract principals the
// length-prefixed contract name.
func (p Principal) Serialize() []byte {
	buf := make([]byte, 0, 2+principalHashSize+1+len(p.contractName))
	if p.kind == ContractPrincipal {
		buf = append(buf, contractPrincipalTag)
	} else {
		buf = append(buf, standardPrincipalTag)
	}
	buf = append(buf, p.version)
	buf = append(buf, p.hash[:]...)
	if p.kind == ContractPrincipal {
		buf = append(buf, byte(len(p.contractName)))
		buf = append(buf, []byte(p.contractName)...)
	}
	return buf
}

// decodeAddress decodes a c32check address of the form
// 'S' + version char + c32(hash160 || checksum) and verifies its checksum.
func decodeAddress(address string) (byte, []byte, error) {
	if len(address) < 2 || address[0] != 'S' {
		return 0, nil, fmt.Errorf("invalid principal address '%s'", address)
	}

	version := strings.IndexByte(c32Alphabet, address[1])
	if version < 0 {
		return 0, nil, fmt.Errorf(
			"invalid version char '%c' in principal address", address[1],
		)
	}

	payload, err := c32Decode(address[2:], principalHashSize+checksumSize)
	if err != nil {
		return 0, nil, err
	}

	hash := payload[:principalHashSize]
	checksum := payload[principalHashSize:]
	if !bytes.Equal(checksum, c32Checksum(byte(version), hash)) {
		return 0, nil, fmt.Errorf(
			"checksum mismatch in principal address '%s'", address,
		)
	}

	return byte(version), hash, nil
}

func c32Checksum(version byte, payload []byte) []byte {
	first := sha256.Sum256(append([]byte{version}, payload...))
	second := sha256.Sum256(first[:])
	return second[:checksumSize]
}

// c32Decode decodes a crockford-style base32 string into exactly outLen
// bytes, rejecting inputs that do not fit.
func c32Decode(encoded string, outLen int) ([]byte, error) {
	if len(encoded) <= 0 {
		return nil, fmt.Errorf("empty c32 payload")
	}

	res := make([]byte, 0, len(encoded)*5/8+1)
	carry := uint16(0)
	carryBits := uint(0)
	for i := len(encoded) - 1; i >= 0; i-- {
		digit := strings.IndexByte(c32Alphabet, encoded[i])
		if digit < 0 {
			return nil, fmt.Errorf("invalid c32 char '%c'", encoded[i])
		}
		carry |= uint16(digit) << carryBits
		carryBits += 5
		for carryBits >= 8 {
			res = append(res, byte(carry&0xff))
			carry >>= 8
			carryBits -= 8
		}
	}
	if carryBits > 0 {
		res = append(res, byte(carry))
	}

	// res holds the little-endian bytes of the decoded number. Strip the
	// high zero bytes and left-pad to the expected length, since leading
	// zero bytes shorten the encoded number.
	for len(res) > 0 && res[len(res)-1] == 0 {
		res = res[:len(res)-1]
	}
	if len(res) > outLen {
		return nil, fmt.Errorf("c32 payload longer than %d bytes", outLen)
	}

	out := make([]byte, outLen)
	for i, b := range res {
		out[outLen-1-i] = b
	}
	return out, nil
}
