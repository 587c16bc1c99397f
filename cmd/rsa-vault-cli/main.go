// Package main is the entry point for the rsa-vault-cli application.
// It registers the keygen, encrypt and decrypt commands and executes the command-line interface.
package main

import (
	"fmt"
	"os"

	commands "github.com/MGTheTrain/rsa-vault/cmd/rsa-vault-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	log, err := commands.SetupLogger()
	if err != nil {
		return err
	}

	rootCmd, err := commands.NewRootCommand(log)
	if err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	return rootCmd.Execute()
}
