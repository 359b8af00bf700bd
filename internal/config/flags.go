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
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-env deployment environment
//	-jwt-private-key-path RSA private key PEM file
//	-jwt-public-key-path RSA public key PEM file
//	-token-issuer token issuer name
//	-access-token-ttl access token lifetime (e.g., "1h", "30m")
//	-otp-ttl one-time code lifetime (e.g., "5m")
//	-otp-delivery one-time code delivery channel (log, sms, kafka)
//	-otp-sweep-interval expired code sweep period (e.g., "10m")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var appEnv string
	var privateKeyPath, publicKeyPath string
	var tokenIssuer string
	var accessTokenTTL time.Duration
	var otpTTL time.Duration
	var otpDelivery string
	var otpSweepInterval time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&appEnv, "env", "", "Deployment environment")
	flag.StringVar(&privateKeyPath, "jwt-private-key-path", "", "RSA private key PEM file")
	flag.StringVar(&publicKeyPath, "jwt-public-key-path", "", "RSA public key PEM file")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTokenTTL, "access-token-ttl", 0, "Access token lifetime (e.g., 1h, 30m)")
	flag.DurationVar(&otpTTL, "otp-ttl", 0, "One-time code lifetime (e.g., 5m)")
	flag.StringVar(&otpDelivery, "otp-delivery", "", "One-time code delivery channel: log, sms, kafka")
	flag.DurationVar(&otpSweepInterval, "otp-sweep-interval", 0, "Expired one-time code sweep period")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Env: appEnv,
		},
		Auth: Auth{
			JWTPrivateKeyPath: privateKeyPath,
			JWTPublicKeyPath:  publicKeyPath,
			TokenIssuer:       tokenIssuer,
			AccessTokenTTL:    accessTokenTTL,
			OTPTTL:            otpTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			OTPDelivery: otpDelivery,
		},
		Workers: Workers{
			OTPSweepInterval: otpSweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
