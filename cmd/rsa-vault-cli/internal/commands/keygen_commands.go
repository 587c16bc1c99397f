package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/randstate"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// KeygenCommandHandler generates signed key pairs and writes them to key files.
type KeygenCommandHandler struct {
	viper  *viper.Viper
	logger logger.Logger
}

// NewKeygenCommandHandler creates a KeygenCommandHandler
func NewKeygenCommandHandler(logger logger.Logger) *KeygenCommandHandler {
	return &KeygenCommandHandler{
		viper:  newViper(),
		logger: logger,
	}
}

// GenerateKeysCmd generates a key pair for the owner and persists both halves
func (commandHandler *KeygenCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	v := commandHandler.viper

	settings := &config.KeygenSettings{
		KeySize:    v.GetUint64("keygen.bits"),
		Iterations: v.GetUint64("keygen.iterations"),
		Seed:       v.GetUint64("keygen.seed"),
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	// an explicit seed, 0 included, is used as given
	if !cmd.Flags().Changed("seed") && !v.IsSet("keygen.seed") {
		settings.Seed = uint64(time.Now().Unix())
	}

	owner := v.GetString("keygen.owner")
	if owner == "" {
		owner = os.Getenv("USER")
	}

	random := randstate.New(settings.Seed)
	defer random.Clear()

	processor, err := cryptography.NewRSAProcessor(random, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to create RSA processor: %w", err)
	}

	generator, err := app.NewKeyGenerationService(processor, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to create key generation service: %w", err)
	}

	bundle, err := generator.Generate(cmd.Context(), keys.GenerateKeyRequest{
		Owner:      owner,
		KeySize:    settings.KeySize,
		Iterations: settings.Iterations,
	})
	if err != nil {
		return err
	}

	if err := cryptography.SavePublicKeyToFile(bundle.Public, v.GetString("keygen.public-key")); err != nil {
		return err
	}
	if err := cryptography.SavePrivateKeyToFile(bundle.Private, v.GetString("keygen.private-key")); err != nil {
		return err
	}

	if v.GetBool("keygen.verbose") {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user = %s\n", owner)
		printValue(out, "s", bundle.Public.S)
		printValue(out, "p", bundle.P)
		printValue(out, "q", bundle.Q)
		printValue(out, "n", bundle.Public.N)
		printValue(out, "e", bundle.Public.E)
		printValue(out, "d", bundle.Private.D)
	}

	commandHandler.logger.Info("Key pair written",
		"public_key", v.GetString("keygen.public-key"),
		"private_key", v.GetString("keygen.private-key"),
		"seed", settings.Seed)
	return nil
}

// InitKeygenCommands registers the keygen command
func InitKeygenCommands(rootCmd *cobra.Command, logger logger.Logger) error {
	handler := NewKeygenCommandHandler(logger)

	var keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signed RSA key pair",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateKeysCmd,
	}
	keygenCmd.Flags().BoolP("verbose", "v", false, "Display verbose program output")
	keygenCmd.Flags().Uint64P("bits", "b", config.DefaultKeySize, "Bits needed for the public modulus n")
	keygenCmd.Flags().Uint64P("iterations", "i", config.DefaultIterations, "Miller-Rabin iterations for testing primes")
	keygenCmd.Flags().StringP("public-key", "n", config.DefaultPublicKey, "Public key file")
	keygenCmd.Flags().StringP("private-key", "d", config.DefaultPrivateKey, "Private key file")
	keygenCmd.Flags().Uint64P("seed", "s", 0, "Random seed for testing (default: seconds since the epoch)")
	keygenCmd.Flags().String("owner", "", "Identity signed into the public key (default: $USER)")

	for _, name := range []string{"verbose", "bits", "iterations", "public-key", "private-key", "seed", "owner"} {
		if err := handler.viper.BindPFlag("keygen."+name, keygenCmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	rootCmd.AddCommand(keygenCmd)
	return nil
}
