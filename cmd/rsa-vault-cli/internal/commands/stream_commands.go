package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/MGTheTrain/rsa-vault/internal/app"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// StreamCommandHandler encrypts and decrypts files with key files written by keygen.
type StreamCommandHandler struct {
	viper  *viper.Viper
	cipher keys.StreamCipherService
	logger logger.Logger
}

// NewStreamCommandHandler creates a StreamCommandHandler
func NewStreamCommandHandler(logger logger.Logger) (*StreamCommandHandler, error) {
	// encryption and decryption draw no randomness
	processor, err := cryptography.NewRSAProcessor(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	codec, err := cryptography.NewStreamCodec(processor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream codec: %w", err)
	}

	cipher, err := app.NewStreamCipherService(processor, codec, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream cipher service: %w", err)
	}

	return &StreamCommandHandler{
		viper:  newViper(),
		cipher: cipher,
		logger: logger,
	}, nil
}

// EncryptCmd encrypts the input stream with a public key file
func (commandHandler *StreamCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	v := commandHandler.viper
	outputFile := v.GetString("encrypt.output-file")

	pub, err := cryptography.ReadPublicKeyFile(v.GetString("encrypt.public-key"))
	if err != nil {
		return err
	}

	// refuse before the output file is opened so an existing file survives
	if err := commandHandler.cipher.VerifyPublicKey(pub); err != nil {
		if errors.Is(err, keys.ErrSignatureMismatch) {
			return keys.ErrSignatureMismatch
		}
		return err
	}

	if v.GetBool("encrypt.verbose") {
		out := verboseWriter(cmd, outputFile)
		fmt.Fprintf(out, "user = %s\n", pub.Owner)
		printValue(out, "s", pub.S)
		printValue(out, "n", pub.N)
		printValue(out, "e", pub.E)
	}

	return commandHandler.run(cmd, "encrypt", func(r io.Reader, w io.Writer) error {
		err := commandHandler.cipher.Encrypt(cmd.Context(), r, w, pub)
		if errors.Is(err, keys.ErrSignatureMismatch) {
			return keys.ErrSignatureMismatch
		}
		return err
	})
}

// DecryptCmd decrypts the input stream with a private key file
func (commandHandler *StreamCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	v := commandHandler.viper
	outputFile := v.GetString("decrypt.output-file")

	priv, err := cryptography.ReadPrivateKeyFile(v.GetString("decrypt.private-key"))
	if err != nil {
		return err
	}

	if v.GetBool("decrypt.verbose") {
		out := verboseWriter(cmd, outputFile)
		printValue(out, "n", priv.N)
		printValue(out, "d", priv.D)
	}

	return commandHandler.run(cmd, "decrypt", func(r io.Reader, w io.Writer) error {
		return commandHandler.cipher.Decrypt(cmd.Context(), r, w, priv)
	})
}

// run wires the input and output files of a stream command around fn
func (commandHandler *StreamCommandHandler) run(cmd *cobra.Command, name string, fn func(io.Reader, io.Writer) error) error {
	v := commandHandler.viper

	in, err := openInput(v.GetString(name+".input-file"), cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOutput(v.GetString(name+".output-file"), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(out)
	if err := fn(bufio.NewReader(in), bw); err != nil {
		out.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return fmt.Errorf("failed to flush output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	commandHandler.logger.Info("Stream processed", "command", name)
	return nil
}

// verboseWriter keeps verbose lines out of the data stream when it goes to stdout
func verboseWriter(cmd *cobra.Command, outputFile string) io.Writer {
	if outputFile == "" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// InitStreamCommands registers the encrypt and decrypt commands
func InitStreamCommands(rootCmd *cobra.Command, logger logger.Logger) error {
	handler, err := NewStreamCommandHandler(logger)
	if err != nil {
		return fmt.Errorf("failed to create stream command handler: %w", err)
	}

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt data with a signed public key",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().BoolP("verbose", "v", false, "Display verbose program output")
	encryptCmd.Flags().StringP("input-file", "i", "", "Input file of data to encrypt (default: stdin)")
	encryptCmd.Flags().StringP("output-file", "o", "", "Output file for encrypted data (default: stdout)")
	encryptCmd.Flags().StringP("public-key", "n", config.DefaultPublicKey, "Public key file")

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt data with a private key",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().BoolP("verbose", "v", false, "Display verbose program output")
	decryptCmd.Flags().StringP("input-file", "i", "", "Input file of data to decrypt (default: stdin)")
	decryptCmd.Flags().StringP("output-file", "o", "", "Output file for decrypted data (default: stdout)")
	decryptCmd.Flags().StringP("private-key", "n", config.DefaultPrivateKey, "Private key file")

	bindings := map[string]*cobra.Command{"encrypt": encryptCmd, "decrypt": decryptCmd}
	for prefix, command := range bindings {
		for _, name := range []string{"verbose", "input-file", "output-file"} {
			if err := handler.viper.BindPFlag(prefix+"."+name, command.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	if err := handler.viper.BindPFlag("encrypt.public-key", encryptCmd.Flags().Lookup("public-key")); err != nil {
		return fmt.Errorf("failed to bind flag public-key: %w", err)
	}
	if err := handler.viper.BindPFlag("decrypt.private-key", decryptCmd.Flags().Lookup("private-key")); err != nil {
		return fmt.Errorf("failed to bind flag private-key: %w", err)
	}

	rootCmd.AddCommand(encryptCmd, decryptCmd)
	return nil
}
