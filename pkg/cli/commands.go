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

// Package cli implements hostctl, the operator and holoport-side companion
// to holostats: key generation, identity inspection, signing and submission.
package cli

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/version"
)

// NewRootCommand builds the hostctl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "hostctl",
		Short: "Manage holoport keys and submit signed telemetry to holostats",
		Long: `hostctl generates holoport keys, shows the identities holostats derives
from them, signs report payloads and submits them to a holostats server.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newKeygenCommand(),
		newIdentityCommand(),
		newSignCommand(),
		newSubmitCommand(),
	)

	return root
}

// Execute runs hostctl with the process arguments and returns the exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		newPrinter(os.Stderr).failure("Error: " + err.Error())
		return 1
	}

	return 0
}

func newKeygenCommand() *cobra.Command {
	var (
		seedFile string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a holoport key and print its identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seedFile == "" {
				return errSeedFileRequired
			}

			priv, err := generateSeed()
			if err != nil {
				return err
			}

			if err := writeSeed(seedFile, priv, force); err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			p.success("Wrote seed to " + seedFile)
			printIdentity(p, priv.Public().(ed25519.PublicKey))
			p.hint("Register the network identity before submitting reports.")

			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", "", "path to write the hex-encoded seed")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing seed file")

	return cmd
}

func newIdentityCommand() *cobra.Command {
	var seedFile string

	cmd := &cobra.Command{
		Use:   "identity [holoport-id]",
		Short: "Decode a holoport id, or the key in a seed file, into its identities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout())

			if len(args) == 1 {
				key, err := identity.DecodeIdentity(args[0])
				if err != nil {
					return err
				}

				printIdentity(p, key)

				return nil
			}

			priv, err := readSeed(seedFile)
			if err != nil {
				return err
			}

			printIdentity(p, priv.Public().(ed25519.PublicKey))

			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", "", "seed file to read when no id is given")

	return cmd
}

func newSignCommand() *cobra.Command {
	var seedFile, payloadFile string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the X-Hpos-Signature value for a payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, err := readSeed(seedFile)
			if err != nil {
				return err
			}

			payload, err := readPayload(cmd.InOrStdin(), payloadFile)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), identity.Sign(priv, payload))

			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", "", "hex-encoded seed file")
	cmd.Flags().StringVar(&payloadFile, "payload", "", "payload file, or - for stdin")

	return cmd
}

func newSubmitCommand() *cobra.Command {
	var (
		seedFile    string
		payloadFile string
		server      string
		compress    bool
		timeout     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Sign a telemetry report and post it to holostats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if server == "" {
				return errServerRequired
			}

			priv, err := readSeed(seedFile)
			if err != nil {
				return err
			}

			raw, err := readPayload(cmd.InOrStdin(), payloadFile)
			if err != nil {
				return err
			}

			holoportID := identity.EncodeIdentity(priv.Public().(ed25519.PublicKey))

			payload, added, err := prepareReport(raw, holoportID)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout())
			if added {
				p.warn("Payload had no holoportId; using " + holoportID)
			}

			client := &http.Client{Timeout: timeout}

			report, err := submitReport(cmd.Context(), client, server, submission{
				payload:   payload,
				signature: identity.Sign(priv, payload),
				gzip:      compress,
			})
			if err != nil {
				return err
			}

			p.success("Report accepted")
			p.field("Holoport ID", report.HoloportID)
			p.field("Timestamp", time.Unix(report.Timestamp, 0).UTC().Format(time.RFC3339))

			return nil
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed-file", "", "hex-encoded seed file")
	cmd.Flags().StringVar(&payloadFile, "payload", "", "report file, or - for stdin")
	cmd.Flags().StringVar(&server, "server", os.Getenv("HOLOSTATS_URL"), "holostats base URL")
	cmd.Flags().BoolVar(&compress, "gzip", false, "gzip the request body")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultHTTPTimeout, "request timeout")

	return cmd
}

func printIdentity(p *printer, key ed25519.PublicKey) {
	p.field("Holoport ID", identity.EncodeIdentity(key))
	p.field("Public key", hex.EncodeToString(key))
	p.field("Network identity", identity.EncodeNetworkIdentity(key))
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	switch path {
	case "":
		return nil, errPayloadRequired
	case "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(path)
	}
}
