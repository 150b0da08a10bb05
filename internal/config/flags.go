// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a HTTP server listen address in format [host]:[port]
//	-d database DSN (sqlite://path or postgres://...)
//	-adapter-address sync server base URL used by the client
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-adapter-timeout outbound sync request timeout
//	-sync-interval auto-sync ticker period (e.g., "5m")
//	-auto-lock-timeout idle duration before the vault auto-locks
//	-max-payload-size maximum request body size in bytes
//	-log-level minimum log level ("debug", "info", "warn", "error")
//	-version application version string
//	-c/-config JSON file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var adapterAddress string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var adapterTimeout time.Duration
	var syncInterval time.Duration
	var autoLockTimeout time.Duration
	var maxPayloadSize int64
	var logLevel string
	var version string

	flag.Var(&serverAddress, "a", "HTTP server listen address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&adapterAddress, "adapter-address", "", "Sync server base URL")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Outbound sync request timeout")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Auto-sync ticker period")
	flag.DurationVar(&autoLockTimeout, "auto-lock-timeout", 0, "Idle duration before auto-lock")
	flag.Int64Var(&maxPayloadSize, "max-payload-size", 0, "Maximum request body size in bytes")
	flag.StringVar(&logLevel, "log-level", "", "Minimum log level")
	flag.StringVar(&version, "version", "", "Application version string")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Version: version,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			MaxPayloadSize: maxPayloadSize,
			LogLevel:       logLevel,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: adapterTimeout,
		},
		Workers: Workers{
			SyncInterval:    syncInterval,
			AutoLockTimeout: autoLockTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
