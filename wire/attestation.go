// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"

	"github.com/angstrom-protocol/angstrom/types"
)

// attestationTypeHash is the EIP-712 root-type component for the
// unlock-attestation struct, a single uint64 field.
var attestationTypeHash = crypto.Keccak256([]byte("BundleUnlockAttestation(uint64 block_number)"))

// ErrAttestationBlobSize is returned by ParseUnlockAttestationBlob for
// any input that is not exactly 85 bytes.
var ErrAttestationBlobSize = errors.New("wire: unlock attestation blob must be 85 bytes")

// UnlockAttestationDigest computes the EIP-712 signing hash over
// {block_number: blockNumber} under the Angstrom domain.
func UnlockAttestationDigest(domainSeparator common.Hash, blockNumber uint64) common.Hash {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], blockNumber)

	structHash := common.BytesToHash(crypto.Keccak256(append(append([]byte{}, attestationTypeHash...), word[:]...)))
	return types.SigningHash(domainSeparator, structHash)
}

// BuildUnlockAttestationBlob assembles the 85-byte payload of message
// ID 4: a 20-byte signer address followed by a 65-byte
// [R||S||V] secp256k1 signature over UnlockAttestationDigest.
func BuildUnlockAttestationBlob(signer common.Address, sig []byte) ([85]byte, error) {
	var blob [85]byte
	if len(sig) != 65 {
		return blob, errors.New("wire: unlock attestation signature must be 65 bytes")
	}
	copy(blob[:20], signer[:])
	copy(blob[20:], sig)
	return blob, nil
}

// ParseUnlockAttestationBlob splits the 85-byte blob back into its
// signer address and signature.
func ParseUnlockAttestationBlob(blob []byte) (common.Address, []byte, error) {
	if len(blob) != 85 {
		return common.Address{}, nil, ErrAttestationBlobSize
	}
	var signer common.Address
	copy(signer[:], blob[:20])
	sig := make([]byte, 65)
	copy(sig, blob[20:])
	return signer, sig, nil
}

// BundleUnlockAttestationMessage is message ID 4's payload: the block
// the attestation applies to plus its 85-byte blob.
type BundleUnlockAttestationMessage struct {
	BlockNumber uint64
	Blob        [85]byte
}
