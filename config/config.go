// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/luxfi/geth/common"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/angstrom-protocol/angstrom/types"
)

// Config is the node's fully resolved configuration. PeersFile, once
// non-empty, is the one durable path the process reads and writes
//.
type Config struct {
	LogLevel         string
	DataDir          string
	RPCAddr          string
	MetricsAddr      string
	ChainRPCURL      string
	ChainID          int64
	AngstromContract common.Address
	PrivateKeyHex    string
	PeersFile        string
	Validators       []*types.ValidatorInfo
	DomainName       string
}

// BuildConfig resolves v into a Config, parsing the validator set out
// of its address:voting_power string form. PeersFile is left empty
// unless --peers-file was given explicitly; ResolvePeersFile fills it
// in once the node's address is known.
func BuildConfig(v *viper.Viper) (Config, error) {
	validators, err := parseValidators(v.GetStringSlice(ValidatorsKey))
	if err != nil {
		return Config{}, err
	}

	return Config{
		LogLevel:         v.GetString(LogLevelKey),
		DataDir:          v.GetString(DataDirKey),
		RPCAddr:          v.GetString(RPCAddrKey),
		MetricsAddr:      v.GetString(MetricsAddrKey),
		ChainRPCURL:      v.GetString(ChainRPCURLKey),
		ChainID:          v.GetInt64(ChainIDKey),
		AngstromContract: common.HexToAddress(v.GetString(AngstromContractKey)),
		PrivateKeyHex:    v.GetString(PrivateKeyKey),
		PeersFile:        v.GetString(PeersFileKey),
		Validators:       validators,
		DomainName:       v.GetString(DomainNameKey),
	}, nil
}

// DomainSeparator derives the EIP-712 domain separator every signed
// order and consensus attestation is bound to, from this node's
// configured chain ID and Angstrom contract address.
func (c Config) DomainSeparator() common.Hash {
	return types.DomainSeparator(big.NewInt(c.ChainID), c.AngstromContract)
}

// ResolvePeersFile returns c.PeersFile if it was set explicitly,
// otherwise derives $HOME/.angstrom_cached_peers-<node>.toml
// for nodeAddress.
func (c Config) ResolvePeersFile(nodeAddress common.Address) (string, error) {
	if c.PeersFile != "" {
		return c.PeersFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolving home directory: %w", err)
	}
	return filepath.Join(home, fmt.Sprintf(".angstrom_cached_peers-%s.toml", nodeAddress.Hex())), nil
}

// parseValidators turns a "0xabc...:100" list into ValidatorInfo
// entries seeding leader.NewSchedule.
func parseValidators(entries []string) ([]*types.ValidatorInfo, error) {
	out := make([]*types.ValidatorInfo, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("config: validator entry %q must be address:voting_power", entry)
		}
		if !common.IsHexAddress(parts[0]) {
			return nil, fmt.Errorf("config: validator entry %q has an invalid address", entry)
		}
		power, err := cast.ToUint64E(parts[1])
		if err != nil {
			return nil, fmt.Errorf("config: validator entry %q has an invalid voting power: %w", entry, err)
		}
		out = append(out, &types.ValidatorInfo{Address: common.HexToAddress(parts[0]), VotingPower: power})
	}
	return out, nil
}
