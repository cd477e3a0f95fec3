/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/carverauto/holostats/pkg/logger"
)

// Duration wraps time.Duration so config files can say "336h" instead of nanoseconds.
type Duration time.Duration

var (
	errInvalidDuration         = errors.New("invalid duration")
	errListenAddrRequired      = errors.New("listen address is required")
	errUnknownStore            = errors.New("database.store must be \"cnpg\" or \"memory\"")
	errCNPGHostRequired        = errors.New("database.cnpg.host is required when store is cnpg")
	errCNPGDatabaseRequired    = errors.New("database.cnpg.database is required when store is cnpg")
	errRetentionHorizonInvalid = errors.New("retention.horizon must be positive")
	errRetentionIntervalNeg    = errors.New("retention.interval must be non-negative")
	errNATSURLRequired         = errors.New("nats.url is required when nats is enabled")
	errCacheSizeNegative       = errors.New("identity_cache_size must be non-negative")
	errPayloadLimitNegative    = errors.New("max_payload_bytes must be non-negative")
)

const (
	StoreCNPG   = "cnpg"
	StoreMemory = "memory"

	// DefaultRetentionHorizon is how long telemetry is kept before the reaper removes it.
	DefaultRetentionHorizon = 14 * 24 * time.Hour

	defaultIdentityCacheSize = 4096
	defaultMaxPayloadBytes   = 1 << 20
	defaultStreamName        = "HOLOSTATS"
	defaultListenAddr        = ":8000"
)

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}

	dur, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidDuration, err)
	}

	*d = Duration(dur)

	return nil
}

// ServerConfig is the holostats core service configuration.
type ServerConfig struct {
	ListenAddr        string          `json:"listen_addr" yaml:"listen_addr"`
	APIKey            string          `json:"api_key,omitempty" yaml:"api_key,omitempty" sensitive:"true"`
	MaxPayloadBytes   int64           `json:"max_payload_bytes,omitempty" yaml:"max_payload_bytes,omitempty"`
	IdentityCacheSize int             `json:"identity_cache_size,omitempty" yaml:"identity_cache_size,omitempty"`
	Database          DatabaseConfig  `json:"database" yaml:"database"`
	Retention         RetentionConfig `json:"retention" yaml:"retention"`
	NATS              *NATSConfig     `json:"nats,omitempty" yaml:"nats,omitempty"`
	GeoIP             *GeoIPConfig    `json:"geoip,omitempty" yaml:"geoip,omitempty"`
	CORS              CORSConfig      `json:"cors" yaml:"cors"`
	Logging           *logger.Config  `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// DatabaseConfig selects the telemetry store backend.
type DatabaseConfig struct {
	Store string        `json:"store" yaml:"store"`
	CNPG  *CNPGDatabase `json:"cnpg,omitempty" yaml:"cnpg,omitempty"`
}

// CNPGDatabase describes how to reach the Postgres (CloudNativePG) cluster.
type CNPGDatabase struct {
	Host               string            `json:"host" yaml:"host"`
	Port               int               `json:"port,omitempty" yaml:"port,omitempty"`
	Database           string            `json:"database" yaml:"database"`
	Username           string            `json:"username,omitempty" yaml:"username,omitempty"`
	Password           string            `json:"password,omitempty" yaml:"password,omitempty" sensitive:"true"`
	ApplicationName    string            `json:"application_name,omitempty" yaml:"application_name,omitempty"`
	SSLMode            string            `json:"ssl_mode,omitempty" yaml:"ssl_mode,omitempty"`
	CertDir            string            `json:"cert_dir,omitempty" yaml:"cert_dir,omitempty"`
	TLS                *TLSConfig        `json:"tls,omitempty" yaml:"tls,omitempty"`
	MaxConnections     int32             `json:"max_connections,omitempty" yaml:"max_connections,omitempty"`
	MinConnections     int32             `json:"min_connections,omitempty" yaml:"min_connections,omitempty"`
	MaxConnLifetime    Duration          `json:"max_conn_lifetime,omitempty" yaml:"max_conn_lifetime,omitempty"`
	HealthCheckPeriod  Duration          `json:"health_check_period,omitempty" yaml:"health_check_period,omitempty"`
	StatementTimeout   Duration          `json:"statement_timeout,omitempty" yaml:"statement_timeout,omitempty"`
	ExtraRuntimeParams map[string]string `json:"extra_runtime_params,omitempty" yaml:"extra_runtime_params,omitempty"`
}

// TLSConfig holds client certificate paths, relative to CertDir when not absolute.
type TLSConfig struct {
	CertFile string `json:"cert_file" yaml:"cert_file"`
	KeyFile  string `json:"key_file" yaml:"key_file"`
	CAFile   string `json:"ca_file" yaml:"ca_file"`
}

// RetentionConfig controls the telemetry reaper. A zero Interval disables the
// background loop; purges can still be triggered through the API.
type RetentionConfig struct {
	Horizon  Duration `json:"horizon,omitempty" yaml:"horizon,omitempty"`
	Interval Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// NATSConfig configures publishing of accepted reports to JetStream.
type NATSConfig struct {
	Enabled    bool       `json:"enabled" yaml:"enabled"`
	URL        string     `json:"url" yaml:"url"`
	StreamName string     `json:"stream_name,omitempty" yaml:"stream_name,omitempty"`
	TLS        *TLSConfig `json:"tls,omitempty" yaml:"tls,omitempty"`
	// NKeySeedFile holds a user NKey seed (SU...). Mutually exclusive with CredsFile.
	NKeySeedFile string `json:"nkey_seed_file,omitempty" yaml:"nkey_seed_file,omitempty"`
	CredsFile    string `json:"creds_file,omitempty" yaml:"creds_file,omitempty"`
}

// GeoIPConfig points at a MaxMind country database used to annotate WAN addresses.
type GeoIPConfig struct {
	DatabasePath string `json:"database_path" yaml:"database_path"`
}

// CORSConfig represents CORS configuration for the HTTP API.
type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins" yaml:"allowed_origins"`
	AllowCredentials bool     `json:"allow_credentials" yaml:"allow_credentials"`
}

// ApplyDefaults fills in zero values. LoadAndValidate callers run it before Validate.
func (c *ServerConfig) ApplyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.Database.Store == "" {
		c.Database.Store = StoreCNPG
	}

	if c.Retention.Horizon == 0 {
		c.Retention.Horizon = Duration(DefaultRetentionHorizon)
	}

	if c.IdentityCacheSize == 0 {
		c.IdentityCacheSize = defaultIdentityCacheSize
	}

	if c.MaxPayloadBytes == 0 {
		c.MaxPayloadBytes = defaultMaxPayloadBytes
	}

	if c.NATS != nil && c.NATS.StreamName == "" {
		c.NATS.StreamName = defaultStreamName
	}
}

// Validate implements config.Validator.
func (c *ServerConfig) Validate() error {
	if c.ListenAddr == "" {
		return errListenAddrRequired
	}

	switch c.Database.Store {
	case StoreMemory:
	case StoreCNPG:
		if c.Database.CNPG == nil || c.Database.CNPG.Host == "" {
			return errCNPGHostRequired
		}

		if c.Database.CNPG.Database == "" {
			return errCNPGDatabaseRequired
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownStore, c.Database.Store)
	}

	if c.Retention.Horizon <= 0 {
		return errRetentionHorizonInvalid
	}

	if c.Retention.Interval < 0 {
		return errRetentionIntervalNeg
	}

	if c.NATS != nil && c.NATS.Enabled && c.NATS.URL == "" {
		return errNATSURLRequired
	}

	if c.IdentityCacheSize < 0 {
		return errCacheSizeNegative
	}

	if c.MaxPayloadBytes < 0 {
		return errPayloadLimitNegative
	}

	return nil
}
