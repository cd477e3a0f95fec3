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

package geoip

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCorrupt = errors.New("corrupt search tree")

type fakeDB struct {
	countries map[string]string
	err       error
	closed    bool
}

func (f *fakeDB) Lookup(ip net.IP, result any) error {
	if f.err != nil {
		return f.err
	}

	code, ok := f.countries[ip.String()]
	if !ok {
		return nil
	}

	record := result.(*countryRecord)
	record.Country.ISOCode = code

	return nil
}

func (f *fakeDB) Close() error {
	f.closed = true
	return nil
}

func TestResolverCountry(t *testing.T) {
	db := &fakeDB{countries: map[string]string{"81.2.69.142": "GB", "2001:db8::1": "NL"}}
	r := &Resolver{db: db}

	tests := []struct {
		address string
		want    string
	}{
		{"81.2.69.142", "GB"},
		{"81.2.69.142/9993", "GB"},
		{" 2001:db8::1/443 ", "NL"},
		{"192.0.2.1", ""},
	}

	for _, tt := range tests {
		got, err := r.Country(tt.address)
		require.NoError(t, err, tt.address)
		assert.Equal(t, tt.want, got, tt.address)
	}

	require.NoError(t, r.Close())
	assert.True(t, db.closed)
}

func TestResolverCountryErrors(t *testing.T) {
	r := &Resolver{db: &fakeDB{}}

	for _, address := range []string{"", "wan_ip", "300.1.1.1/9993"} {
		_, err := r.Country(address)
		require.ErrorIs(t, err, ErrInvalidAddress, address)
	}

	r = &Resolver{db: &fakeDB{err: errCorrupt}}
	_, err := r.Country("81.2.69.142")
	require.ErrorIs(t, err, errCorrupt)
}

func TestOpenMissingDatabase(t *testing.T) {
	_, err := Open("/nonexistent/GeoLite2-Country.mmdb")
	require.Error(t, err)
}
