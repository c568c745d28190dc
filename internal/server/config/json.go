package config

import (
	"encoding/json"
	"os"

	"github.com/shadowbtc/shadowvault/internal/flagx"
	"github.com/shadowbtc/shadowvault/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC    string         `json:"endpoint_addr_grpc"`
	StorageDriver       string         `json:"storage_driver"`
	DatabaseDSN         string         `json:"database_dsn"`
	SecretKey           string         `json:"secret_key"`
	OperatorTokenTTL    timex.Duration `json:"operator_token_ttl"`
	HistoryDefaultLimit int            `json:"history_default_limit"`
	HistoryMaxLimit     int            `json:"history_max_limit"`
	FaucetMaxAmount     float64        `json:"faucet_max_amount"`
	LogLevel            string         `json:"log_level"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the file named by -c/-config. Keys missing
// from the file keep their current value. An unreadable or malformed file
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageDriver, c.StorageDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.OperatorTokenTTL.Duration != 0 {
		config.OperatorTokenTTL = c.OperatorTokenTTL.Duration
	}
	if c.HistoryDefaultLimit != 0 {
		config.HistoryDefaultLimit = c.HistoryDefaultLimit
	}
	if c.HistoryMaxLimit != 0 {
		config.HistoryMaxLimit = c.HistoryMaxLimit
	}
	if c.FaucetMaxAmount != 0 {
		config.FaucetMaxAmount = c.FaucetMaxAmount
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
