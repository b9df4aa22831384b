// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigAppliesDefaults(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, nil)
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "./data", cfg.DataDir)
	require.Empty(t, cfg.PeersFile)
	require.Equal(t, "Angstrom", cfg.DomainName)
	require.Empty(t, cfg.Validators)
}

func TestBuildConfigHonorsExplicitPeersFile(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--peers-file", "/tmp/custom-peers.toml"})
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	path, err := cfg.ResolvePeersFile(common.Address{})
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom-peers.toml", path)
}

func TestResolvePeersFileDerivesFromHomeAndAddress(t *testing.T) {
	cfg := Config{}
	addr := common.HexToAddress("0x0000000000000000000000000000000000000042")
	path, err := cfg.ResolvePeersFile(addr)
	require.NoError(t, err)
	require.Contains(t, path, ".angstrom_cached_peers-"+addr.Hex()+".toml")
}

func TestBuildConfigAppliesChainDefaults(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, nil)
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	require.Equal(t, int64(1), cfg.ChainID)
	require.Equal(t, "127.0.0.1:9645", cfg.MetricsAddr)
}

func TestDomainSeparatorVariesWithChainIDAndContract(t *testing.T) {
	a := Config{ChainID: 1, AngstromContract: common.HexToAddress("0x01")}.DomainSeparator()
	b := Config{ChainID: 2, AngstromContract: common.HexToAddress("0x01")}.DomainSeparator()
	require.NotEqual(t, a, b)
}

func TestBuildConfigParsesValidatorList(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{
		"--validators", "0x0000000000000000000000000000000000000001:10,0x0000000000000000000000000000000000000002:20",
	})
	require.NoError(t, err)

	cfg, err := BuildConfig(v)
	require.NoError(t, err)
	require.Len(t, cfg.Validators, 2)
	require.Equal(t, uint64(10), cfg.Validators[0].VotingPower)
	require.Equal(t, uint64(20), cfg.Validators[1].VotingPower)
}

func TestBuildConfigRejectsMalformedValidatorEntry(t *testing.T) {
	fs := BuildFlagSet()
	v, err := BuildViper(fs, []string{"--validators", "not-an-entry"})
	require.NoError(t, err)

	_, err = BuildConfig(v)
	require.Error(t, err)
}

func TestBuildViperPropagatesFlagParseErrors(t *testing.T) {
	fs := BuildFlagSet()
	_, err := BuildViper(fs, []string{"--unknown-flag"})
	require.Error(t, err)
}
