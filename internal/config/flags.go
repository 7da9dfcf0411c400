// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
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

// tableList is a comma-separated flag value.
type tableList []string

func (l *tableList) String() string { return strings.Join(*l, ",") }

func (l *tableList) Set(s string) error {
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

// ParseFlags parses command-line flags from args (without the program name).
//
// Flags:
//
//	-a HTTP listen address in format [host]:[port]
//	-cloud cloud store base URL
//	-d cloud database DSN
//	-data local data path
//	-c/-config json file path with configs
//	-node-id node identifier
//	-node-token-key node token signing key
//	-node-token-issuer node token issuer
//	-request-timeout cloud request timeout (e.g., "15s")
//	-sync-interval sync interval in minutes
//	-tables comma-separated list of synced tables
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("hybrid-sync", flag.ContinueOnError)

	var serverAddress NetAddress
	var tables tableList
	var cloudAddress, databaseDSN, dataPath, jsonConfigPath string
	var nodeID, nodeTokenKey, nodeTokenIssuer string
	var requestTimeout time.Duration
	var syncInterval int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&cloudAddress, "cloud", "", "Cloud store base URL")
	fs.StringVar(&databaseDSN, "d", "", "Cloud database DSN")
	fs.StringVar(&dataPath, "data", "", "Local data path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&nodeID, "node-id", "", "Node identifier")
	fs.StringVar(&nodeTokenKey, "node-token-key", "", "Node token signing key")
	fs.StringVar(&nodeTokenIssuer, "node-token-issuer", "", "Node token issuer")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Cloud request timeout (e.g., 15s)")
	fs.IntVar(&syncInterval, "sync-interval", 0, "Sync interval in minutes")
	fs.Var(&tables, "tables", "Comma-separated synced tables")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			NodeID:          nodeID,
			NodeTokenKey:    nodeTokenKey,
			NodeTokenIssuer: nodeTokenIssuer,
		},
		Storage: Storage{
			LocalDataPath: dataPath,
			DB:            DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    cloudAddress,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			IntervalMinutes: syncInterval,
			Tables:          tables,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
