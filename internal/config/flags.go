package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags shared by all binaries.
//
// Flags:
//
//	-a               server address in format [host]:[port]
//	-grpc-address    grpc server address in format [host]:[port]
//	-d               database DSN
//	-c / -config     JSON or YAML config file path
//	-ssm-parameter   AWS SSM parameter with a YAML config
//	-token-sign-key  token signing key
//	-token-issuer    token issuer name
//	-token-duration  token duration (e.g. "1h")
//	-request-timeout request timeout (e.g. "30s")
//	-hash-key        body integrity / url signing key
//	-log-level       zerolog level (debug, info, warn, ...)
//	-photos-dir      local photo directory
//	-photos-bucket   S3 photo bucket
//	-mail-sender     mail From address
//	-backend         backend base url used by the client
//	-backend-grpc    backend change feed address used by the client
//	-probe-interval  connectivity probe interval
//	-sync-timeout    foreground sync timeout
//	-max-retries     retry cap of queued operations (negative: no cap)
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("trip-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.FilePath, "c", "", "Config file path")
	fs.StringVar(&cfg.FilePath, "config", "", "Config file path (alias)")
	fs.StringVar(&cfg.SSMParameter, "ssm-parameter", "", "AWS SSM parameter with YAML config")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Security hash key")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "Log level")
	fs.StringVar(&cfg.Storage.Photos.Dir, "photos-dir", "", "Local photo directory")
	fs.StringVar(&cfg.Storage.Photos.Bucket, "photos-bucket", "", "S3 photo bucket")
	fs.StringVar(&cfg.Mail.Sender, "mail-sender", "", "Mail sender address")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "backend", "", "Backend base url")
	fs.StringVar(&cfg.Adapter.GRPCAddress, "backend-grpc", "", "Backend change feed address")
	fs.DurationVar(&cfg.Workers.ProbeInterval, "probe-interval", 0, "Connectivity probe interval")
	fs.DurationVar(&cfg.Workers.SyncTimeout, "sync-timeout", 0, "Foreground sync timeout")
	fs.IntVar(&cfg.Workers.MaxRetries, "max-retries", 0, "Retry cap of queued operations")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()
	cfg.Adapter.RequestTimeout = cfg.Server.RequestTimeout

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
