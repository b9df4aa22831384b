// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the node's configuration from command-line
// flags, environment variables, and an optional config file via a
// flags→viper→struct flow (BuildFlagSet/BuildViper/BuildConfig).
package config

import "github.com/spf13/pflag"

// Flag keys double as both pflag names and viper lookup keys.
const (
	VersionKey          = "version"
	LogLevelKey         = "log-level"
	DataDirKey          = "data-dir"
	RPCAddrKey          = "rpc-addr"
	MetricsAddrKey      = "metrics-addr"
	ChainRPCURLKey      = "chain-rpc-url"
	ChainIDKey          = "chain-id"
	AngstromContractKey = "angstrom-contract"
	PrivateKeyKey       = "private-key"
	PeersFileKey        = "peers-file"
	ValidatorsKey       = "validators"
	DomainNameKey       = "domain-name"
	ConfigFileKey       = "config-file"
)

// Version is stamped by the release process; left as a placeholder
// default until that wiring exists.
const Version = "v0.1.0"

// BuildFlagSet declares every flag the node accepts, with the
// defaults a single-process local deployment would want.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("angstromd", pflag.ContinueOnError)

	fs.Bool(VersionKey, false, "print the version and exit")
	fs.String(LogLevelKey, "info", "log level (debug|info|warn|error|crit)")
	fs.String(DataDirKey, "./data", "directory for persisted node state")
	fs.String(RPCAddrKey, "127.0.0.1:8645", "address the JSON-RPC/websocket server listens on")
	fs.String(MetricsAddrKey, "127.0.0.1:9645", "address the Prometheus /metrics endpoint listens on")
	fs.String(ChainRPCURLKey, "", "L1 RPC endpoint, stored in the config only; no chain client reads it")
	fs.Int64(ChainIDKey, 1, "L1 chain ID the EIP-712 domain separator is bound to")
	fs.String(AngstromContractKey, "", "address of the Angstrom settlement contract on L1")
	fs.String(PrivateKeyKey, "", "hex-encoded secp256k1 key this node signs consensus messages with")
	fs.String(PeersFileKey, "", "path to the cached-peers TOML file (defaults to $HOME/.angstrom_cached_peers-<node>.toml)")
	fs.StringSlice(ValidatorsKey, nil, "comma-separated validator_address:voting_power pairs seeding the leader schedule")
	fs.String(DomainNameKey, "Angstrom", "EIP-712 domain name stored in the config; signing always uses types.DomainName")
	fs.String(ConfigFileKey, "", "optional path to a config file overlaying flag defaults")

	return fs
}
