package commands

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/pkg/config"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of command flags, e.g. RSA_KEYGEN_BITS.
const EnvPrefix = "rsa"

// SetupLogger initializes the CLI logger on stderr so that stream output on stdout stays clean.
func SetupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
		Output:   config.LogOutputStderr,
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// openInput opens path for reading, or returns stdin when path is empty.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(stdin), nil
	}
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}
	return file, nil
}

// openOutput creates path for writing, or returns stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{stdout}, nil
	}
	file, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("unable to write file: %w", err)
	}
	return file, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// printValue writes a verbose "name (bits) = decimal" line.
func printValue(w io.Writer, name string, x *big.Int) {
	fmt.Fprintf(w, "%s (%d bits) = %s\n", name, x.BitLen(), x.String())
}
