package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress is a flag.Value for "host:port" listener addresses. The host
// is "localhost" or an IP literal.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags reads command-line flags into a fresh StructuredConfig. One
// flag set serves both binaries; each ignores the fields it does not use.
//
//	-a               HTTP listen address, host:port
//	-grpc-address    gRPC listen address, host:port
//	-r               vault server URL used by the client
//	-d               PostgreSQL DSN
//	-l               local SQLite cache path
//	-c, -config      JSON config file
//	-request-timeout server handler and client request timeout
//	-token-duration  session token lifetime
func parseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg                StructuredConfig
		httpAddr, grpcAddr NetAddress
		requestTimeout     time.Duration
	)

	fs := flag.NewFlagSet("life-os", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&httpAddr, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC listen address host:port")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "r", "", "vault server URL")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.Storage.Local.Path, "l", "", "local cache path")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "request timeout, e.g. 30s")

	fs.StringVar(&cfg.App.PasswordHashKey, "password-hash-key", "", "HMAC key for stored auth hashes")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "session token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "session token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "session token lifetime, e.g. 1h")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "request body HMAC key")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "log level")
	fs.StringVar(&cfg.Vault.DeviceLabel, "device-label", "", "label shown in the device list")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.Adapter.RequestTimeout = requestTimeout

	return &cfg, nil
}

// String gives "" for an unset address, so that the address does not
// override lower-priority sources.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("port %q is not a number", portStr)
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}
	if host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("incorrect IP-address %q", host)
	}

	a.Host, a.Port = host, port
	return nil
}
