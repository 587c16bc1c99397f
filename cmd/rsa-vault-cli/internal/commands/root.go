package commands

import (
	"fmt"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the rsa-vault-cli command tree.
func NewRootCommand(logger logger.Logger) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "rsa-vault-cli",
		Short: "Signed RSA key generation and stream encryption",
		Long: `rsa-vault-cli generates RSA key pairs whose public half carries a signature
over the owner identity, and encrypts or decrypts byte streams with them.

Every flag can also be set through the environment, e.g. RSA_KEYGEN_BITS=512.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	if err := InitKeygenCommands(rootCmd, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize keygen commands: %w", err)
	}

	if err := InitStreamCommands(rootCmd, logger); err != nil {
		return nil, fmt.Errorf("failed to initialize stream commands: %w", err)
	}

	return rootCmd, nil
}
