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

// Package geoip annotates WAN addresses with the country from a MaxMind database.
package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/maxminddb-golang"
)

var ErrInvalidAddress = errors.New("invalid IP address")

type lookuper interface {
	Lookup(ip net.IP, result any) error
	Close() error
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Resolver looks up country codes. It is safe for concurrent use.
type Resolver struct {
	db lookuper
}

// Open memory-maps a GeoLite2/GeoIP2 Country or City database.
func Open(path string) (*Resolver, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database %s: %w", path, err)
	}

	return &Resolver{db: db}, nil
}

// Country returns the ISO country code for address, or "" when the database
// has no entry. ZeroTier physical addresses of the form "ip/port" are accepted.
func (r *Resolver) Country(address string) (string, error) {
	ip, err := parseAddress(address)
	if err != nil {
		return "", err
	}

	var record countryRecord
	if err := r.db.Lookup(ip, &record); err != nil {
		return "", fmt.Errorf("geoip lookup %s: %w", ip, err)
	}

	return record.Country.ISOCode, nil
}

func (r *Resolver) Close() error {
	return r.db.Close()
}

func parseAddress(address string) (net.IP, error) {
	host, _, _ := strings.Cut(strings.TrimSpace(address), "/")

	ip := net.ParseIP(host)
	if ip == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	return ip, nil
}
