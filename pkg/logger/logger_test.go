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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	otellog "go.opentelemetry.io/otel/log"
	"gopkg.in/yaml.v3"
)

func TestOTelConfig(t *testing.T) {
	config := DefaultOTelConfig()

	if config.ServiceName == "" {
		t.Error("ServiceName should have a default value")
	}

	if config.BatchTimeout != Duration(5*time.Second) {
		t.Errorf("Expected default BatchTimeout to be 5s, got %v", config.BatchTimeout)
	}
}

func TestOTelWriter_Disabled(t *testing.T) {
	writer, err := NewOTELWriter(context.Background(), OTelConfig{Enabled: false})
	if err == nil {
		t.Error("Expected error when OTel is disabled")
	}

	if writer != nil {
		t.Error("Writer should be nil when OTel is disabled")
	}
}

func TestOTelWriter_NoEndpoint(t *testing.T) {
	writer, err := NewOTELWriter(context.Background(), OTelConfig{Enabled: true})
	if !errors.Is(err, ErrOTelEndpointRequired) {
		t.Errorf("Expected ErrOTelEndpointRequired, got %v", err)
	}

	if writer != nil {
		t.Error("Writer should be nil when endpoint is empty")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(context.Background(), &Config{Level: "loud"}); err == nil {
		t.Error("Expected error for an unknown level")
	}
}

func TestWithComponentTagsEvents(t *testing.T) {
	var buf bytes.Buffer

	log := FromZerolog(zerolog.New(&buf)).WithComponent("telemetry")
	log.Info().Msg("hello")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}

	if entry["component"] != "telemetry" {
		t.Errorf("Expected component telemetry, got %v", entry["component"])
	}
}

func TestSeverityFor(t *testing.T) {
	cases := map[string]otellog.Severity{
		"trace":   otellog.SeverityTrace,
		"debug":   otellog.SeverityDebug,
		"info":    otellog.SeverityInfo,
		"WARN":    otellog.SeverityWarn,
		"error":   otellog.SeverityError,
		"panic":   otellog.SeverityFatal,
		"unknown": otellog.SeverityInfo,
	}

	for level, want := range cases {
		if got := severityFor(level); got != want {
			t.Errorf("severityFor(%q) = %v, want %v", level, got, want)
		}
	}
}

func TestAttributeStringTruncates(t *testing.T) {
	long := strings.Repeat("a", maxAttributeValueLength*2)

	got := attributeString(long)
	if len(got) != maxAttributeValueLength {
		t.Errorf("Expected %d bytes, got %d", maxAttributeValueLength, len(got))
	}

	if !strings.HasSuffix(got, "...") {
		t.Error("Expected truncated value to end with ...")
	}

	if attributeString(nil) != "null" {
		t.Error("Expected nil to render as null")
	}

	if attributeString(map[string]interface{}{"a": 1.0}) != `{"a":1}` {
		t.Error("Expected maps to render as JSON")
	}
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer

	mw := NewMultiWriter(&a, &b)

	n, err := mw.Write([]byte("line\n"))
	if err != nil || n != 5 {
		t.Fatalf("Write() = %d, %v", n, err)
	}

	if a.String() != "line\n" || b.String() != "line\n" {
		t.Errorf("Expected both writers to receive the line, got %q and %q", a.String(), b.String())
	}
}

func TestDurationUnmarshal(t *testing.T) {
	var d Duration

	if err := json.Unmarshal([]byte(`"250ms"`), &d); err != nil || time.Duration(d) != 250*time.Millisecond {
		t.Errorf("JSON string: got %v, %v", time.Duration(d), err)
	}

	if err := json.Unmarshal([]byte(`1000`), &d); err != nil || time.Duration(d) != time.Microsecond {
		t.Errorf("JSON number: got %v, %v", time.Duration(d), err)
	}

	if err := json.Unmarshal([]byte(`true`), &d); err == nil {
		t.Error("Expected error for a boolean duration")
	}

	if err := yaml.Unmarshal([]byte(`10s`), &d); err != nil || time.Duration(d) != 10*time.Second {
		t.Errorf("YAML: got %v, %v", time.Duration(d), err)
	}
}

func TestInitializeTracingWithoutExporter(t *testing.T) {
	tp, err := InitializeTracing(context.Background(), TracingConfig{
		ServiceName: "holostats-test",
		Logger:      NewTestLogger(),
	})
	if err != nil {
		t.Fatalf("InitializeTracing() error = %v", err)
	}

	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	}()

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("Expected a recording span from the installed provider")
	}
}
