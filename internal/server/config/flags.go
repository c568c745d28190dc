package config

import (
	"flag"
	"os"
	"time"

	"github.com/shadowbtc/shadowvault/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-k string   storage driver: postgres | sqlite
//	-d string   database DSN
//	-s string   JWT HMAC secret key
//	-t int      operator token validity, minutes
//	-l int      default ListHistory page size
//	-m int      maximum ListHistory page size
//	-f float    faucet maximum amount
//	-v string   log level
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-s", "-t", "-l", "-m", "-f", "-v", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StorageDriver, "k", config.StorageDriver, "storage driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	operatorTokenTTL := fs.Int("t", int(config.OperatorTokenTTL.Minutes()), "operator token validity (in minutes)")

	fs.IntVar(&config.HistoryDefaultLimit, "l", config.HistoryDefaultLimit, "default history page size")
	fs.IntVar(&config.HistoryMaxLimit, "m", config.HistoryMaxLimit, "maximum history page size")
	fs.Float64Var(&config.FaucetMaxAmount, "f", config.FaucetMaxAmount, "faucet maximum amount")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level (debug|info|warn|error)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.OperatorTokenTTL = time.Duration(*operatorTokenTTL) * time.Minute
}
