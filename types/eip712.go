// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"math/big"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
)

// DomainName is the EIP-712 domain name every order and consensus
// message in Angstrom signs under.
const DomainName = "Angstrom"

// DomainSeparator computes the EIP-712 domain separator for the given
// chain and verifying contract, following the standard
// EIP712Domain(string name,uint256 chainId,address verifyingContract)
// layout.
func DomainSeparator(chainID *big.Int, verifyingContract common.Address) common.Hash {
	typeHash := crypto.Keccak256(
		[]byte("EIP712Domain(string name,uint256 chainId,address verifyingContract)"),
	)
	nameHash := crypto.Keccak256([]byte(DomainName))
	var buf []byte
	buf = append(buf, typeHash...)
	buf = append(buf, nameHash...)
	buf = append(buf, pad32(chainID)...)
	buf = append(buf, padAddress(verifyingContract)...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

// SigningHash combines a domain separator with a struct hash per
// EIP-712: keccak256(0x1901 ++ domainSeparator ++ structHash).
func SigningHash(domainSeparator, structHash common.Hash) common.Hash {
	buf := make([]byte, 0, 66)
	buf = append(buf, 0x19, 0x01)
	buf = append(buf, domainSeparator[:]...)
	buf = append(buf, structHash[:]...)
	return common.BytesToHash(crypto.Keccak256(buf))
}

// pad32 left-pads a non-negative integer into a 32-byte big-endian word,
// the ABI encoding of a uintN value.
func pad32(v *big.Int) []byte {
	out := make([]byte, 32)
	if v == nil {
		return out
	}
	b := v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// padAddress left-pads an address into a 32-byte ABI word.
func padAddress(a common.Address) []byte {
	out := make([]byte, 32)
	copy(out[12:], a[:])
	return out
}

// padBool ABI-encodes a bool as a 32-byte word.
func padBool(b bool) []byte {
	out := make([]byte, 32)
	if b {
		out[31] = 1
	}
	return out
}

// hashDynamic ABI-encodes a dynamic `bytes` field for struct hashing:
// EIP-712 requires keccak256(bytes) in place of the bytes themselves.
func hashDynamic(b []byte) []byte {
	return crypto.Keccak256(b)
}

// keccak is a thin alias over crypto.Keccak256 for callers in this
// package that don't need the byte-slice argument spelled out.
func keccak(b []byte) []byte { return crypto.Keccak256(b) }

// typeHash derives a per-order-type domain tag. Angstrom's orders are
// Solidity structs in production; here the type name alone is hashed
// as the struct's root-type component, since this repo never encodes
// or decodes against the on-chain ABI directly.
func typeHash(typeName string) []byte {
	return crypto.Keccak256([]byte(typeName))
}

// recoverSigner recovers the signing address from a 65-byte
// [R || S || V] secp256k1 signature over hash.
func recoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != 65 {
		return common.Address{}, ErrInvalidSignature
	}
	// crypto.Ecrecover expects V in {0,1}; EIP-712/Ethereum sigs commonly
	// carry V in {27,28}.
	normalized := make([]byte, 65)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(hash[:], normalized)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
