// SPDX-FileCopyrightText: 2025-present Pixealed authors
// SPDX-License-Identifier: Apache-2.0

// Command pxl packs, verifies and unpacks .pxl containers.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	pxl "github.com/pixealed/go-pxl"
	"github.com/pixealed/go-pxl/bundle"
	"github.com/pixealed/go-pxl/crypto/keyutil"
	"github.com/pixealed/go-pxl/format"
	"github.com/pixealed/go-pxl/keystore"
	"github.com/pixealed/go-pxl/log"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:          "pxl",
		Short:        "Tamper-evident encrypted image containers",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			threshold := log.InfoLevel
			if dev {
				pxl.SetDevMode()
				threshold = log.DebugLevel
			}
			cw := zerolog.ConsoleWriter{Out: os.Stderr}
			log.SetFactory(log.ZerologFactory(cw, threshold))
		},
	}
	cmd.PersistentFlags().BoolVar(&dev, "dev", false, "enable development mode diagnostics")

	cmd.AddCommand(keygenCommand(), packCommand(), verifyCommand(), extractCommand(), inspectCommand())
	return cmd
}

func keygenCommand() *cobra.Command {
	var signingKeyPath, publicKeyPath string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a fresh Ed25519 keypair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seed, pub, err := format.GenerateKeypair()
			if err != nil {
				return err
			}
			if err := keystore.Save(signingKeyPath, seed); err != nil {
				return err
			}
			if err := keystore.Save(publicKeyPath, pub); err != nil {
				return err
			}

			fp, err := keyutil.Fingerprint(pub)
			if err != nil {
				return err
			}
			cmd.Printf("signing key: %s\npublic key:  %s\nfingerprint: %s\n", signingKeyPath, publicKeyPath, fp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&signingKeyPath, "signing-key", "k", "signing_key.bin", "signing key output path")
	cmd.Flags().StringVarP(&publicKeyPath, "public-key", "p", "public_key.bin", "public key output path")
	return cmd
}

func packCommand() *cobra.Command {
	var outputPath, signingKeyPath, bundlePath string

	cmd := &cobra.Command{
		Use:   "pack <image>",
		Short: "Pack an image into a signed encrypted container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if outputPath == "" {
				outputPath = input + ".pxl"
			}

			seed, err := keystore.Load(signingKeyPath)
			if err != nil {
				return err
			}

			if err := format.PackFile(input, outputPath, seed); err != nil {
				return err
			}
			cmd.Printf("packed %s\n", outputPath)

			if bundlePath == "" {
				return nil
			}

			pub, err := keyutil.PublicKeyFromSeed(seed)
			if err != nil {
				return err
			}
			if err := bundle.CreateFile(bundlePath, outputPath, pub); err != nil {
				return err
			}
			cmd.Printf("bundled %s\n", bundlePath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output container path (default: <image>.pxl)")
	cmd.Flags().StringVarP(&signingKeyPath, "signing-key", "k", "signing_key.bin", "signing key path")
	cmd.Flags().StringVarP(&bundlePath, "bundle", "b", "", "also write a distribution zip to this path")
	return cmd
}

func verifyCommand() *cobra.Command {
	var publicKeyPath string

	cmd := &cobra.Command{
		Use:   "verify <container.pxl>",
		Short: "Verify a container against a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := keystore.Load(publicKeyPath)
			if err != nil {
				return err
			}

			if !format.VerifyFile(args[0], pub) {
				return fmt.Errorf("verification failed for %s", args[0])
			}
			cmd.Printf("verified %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&publicKeyPath, "public-key", "p", "public_key.bin", "public key path")
	return cmd
}

func extractCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extract <container.pxl>",
		Short: "Decrypt a container payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, _, err := format.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
				return err
			}
			cmd.Printf("extracted %s (%d bytes)\n", outputPath, len(payload))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "payload.bin", "payload output path")
	return cmd
}

func inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <container.pxl>",
		Short: "Print the manifest of a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := format.ReadFile(args[0])
			if err != nil {
				return err
			}

			cmd.Printf("total size:  %d\nchunk size:  %d\nnum chunks:  %d\nmerkle root: %s\n", m.TotalSize, m.ChunkSize, m.NumChunks, m.MerkleRoot)
			for k, v := range m.Metadata {
				cmd.Printf("metadata %q: %v\n", k, v)
			}
			return nil
		},
	}
	return cmd
}
