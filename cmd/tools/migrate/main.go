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

// Command migrate applies the holostats schema migrations to the CNPG
// database named in a core config file, without starting the service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/holostats/pkg/config"
	"github.com/carverauto/holostats/pkg/db"
	"github.com/carverauto/holostats/pkg/lifecycle"
	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

var errNoCNPGConfiguration = errors.New("config has no database.cnpg section")

func main() {
	configPath := flag.String("config", "/etc/holostats/core.yaml", "Path to core config file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configPath, *debug)
	cancel()

	if err != nil {
		log.Fatalf("holostats-migrate: %v", err)
	}
}

func run(ctx context.Context, configPath string, debug bool) error {
	var cfg models.ServerConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, configPath, &cfg); err != nil {
		return err
	}

	if cfg.Database.Store != models.StoreCNPG || cfg.Database.CNPG == nil {
		return errNoCNPGConfiguration
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	logCfg.Debug = logCfg.Debug || debug

	appLogger, err := lifecycle.CreateComponentLogger(ctx, "migrate", logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	pool, err := db.NewCNPGPool(ctx, cfg.Database.CNPG, appLogger)
	if err != nil {
		return fmt.Errorf("connect to CNPG: %w", err)
	}
	defer pool.Close()

	appLogger.Info().Msg("applying CNPG migrations")

	if err := db.RunCNPGMigrations(ctx, pool, appLogger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	appLogger.Info().Msg("CNPG migrations finished successfully")

	return nil
}
