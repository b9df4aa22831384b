// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"crypto/ecdsa"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/crypto"
)

// SignHash produces a 65-byte [R||S||V] secp256k1 signature over hash
//.
func SignHash(hash common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	return crypto.Sign(hash[:], key)
}

// RecoverSigner recovers the address that produced sig over hash.
func RecoverSigner(hash common.Hash, sig []byte) (common.Address, error) {
	return recoverSigner(hash, sig)
}

// VerifyOrderSignature recovers the signer of an order's EIP-712
// digest and reports whether it matches the claimed From address
//).
func VerifyOrderSignature(o Order, domainSeparator common.Hash) (common.Address, bool) {
	hash := o.OrderHash(domainSeparator)
	recovered, err := recoverSigner(hash, o.Meta().Signature)
	if err != nil {
		return common.Address{}, false
	}
	return recovered, recovered == o.Meta().From
}
