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

// Package app boots the holostats core service.
package app

import (
	"context"

	"github.com/carverauto/holostats/pkg/config"
	"github.com/carverauto/holostats/pkg/core"
	"github.com/carverauto/holostats/pkg/lifecycle"
	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/version"
)

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
}

// Run loads the configuration, builds the core server and blocks until a
// shutdown signal arrives.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg models.ServerConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, opts.ConfigPath, &cfg); err != nil {
		return err
	}

	if err := lifecycle.InitializeLogger(ctx, cfg.Logging); err != nil {
		return err
	}

	baseLogger := logger.FromZerolog(logger.GetLogger())
	mainLogger := baseLogger.WithComponent("core-main")

	defer func() {
		if shutdownErr := lifecycle.ShutdownLogger(); shutdownErr != nil {
			mainLogger.Error().Err(shutdownErr).Msg("Error shutting down logger")
		}
	}()

	var otelCfg *logger.OTelConfig
	if cfg.Logging != nil {
		otelCfg = &cfg.Logging.OTel
	}

	tp, err := logger.InitializeTracing(ctx, logger.TracingConfig{
		ServiceName:    "holostats-core",
		ServiceVersion: version.GetVersion(),
		Logger:         mainLogger,
		OTel:           otelCfg,
	})
	if err != nil {
		return err
	}

	defer func() {
		if shutdownErr := tp.Shutdown(context.Background()); shutdownErr != nil {
			mainLogger.Error().Err(shutdownErr).Msg("Error shutting down tracer provider")
		}
	}()

	if sanitized, sanitizeErr := config.Sanitize(&cfg); sanitizeErr == nil {
		mainLogger.Info().RawJSON("config", sanitized).Msg("Loaded configuration")
	} else {
		mainLogger.Warn().Err(sanitizeErr).Msg("Failed to sanitize configuration for logging")
	}

	server, err := core.NewServer(ctx, &cfg, baseLogger)
	if err != nil {
		return err
	}

	return lifecycle.RunService(ctx, &lifecycle.ServiceOptions{
		Service: server,
		Logger:  mainLogger,
	})
}
