package cryptography

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
)

// WritePublicKey writes n, e, s as lower-case hex and the owner identity, one per line.
func WritePublicKey(w io.Writer, pub *keys.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("public key cannot be nil")
	}
	_, err := fmt.Fprintf(w, "%x\n%x\n%x\n%s\n", pub.N, pub.E, pub.S, pub.Owner)
	if err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}
	return nil
}

// ReadPublicKey parses a record written by WritePublicKey.
func ReadPublicKey(r io.Reader) (*keys.PublicKey, error) {
	lines, err := readRecordLines(r, 4)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}

	fields := make([]*big.Int, 3)
	for i, name := range []string{"n", "e", "s"} {
		fields[i], err = parseRecordHex(name, lines[i])
		if err != nil {
			return nil, fmt.Errorf("public key: %w", err)
		}
	}

	owner := strings.TrimSpace(lines[3])
	if owner == "" {
		return nil, fmt.Errorf("public key: empty owner: %w", keys.ErrMalformedKeyRecord)
	}

	return &keys.PublicKey{N: fields[0], E: fields[1], S: fields[2], Owner: owner}, nil
}

// WritePrivateKey writes n and d as lower-case hex, one per line.
func WritePrivateKey(w io.Writer, priv *keys.PrivateKey) error {
	if priv == nil {
		return fmt.Errorf("private key cannot be nil")
	}
	_, err := fmt.Fprintf(w, "%x\n%x\n", priv.N, priv.D)
	if err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}
	return nil
}

// ReadPrivateKey parses a record written by WritePrivateKey.
func ReadPrivateKey(r io.Reader) (*keys.PrivateKey, error) {
	lines, err := readRecordLines(r, 2)
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}

	n, err := parseRecordHex("n", lines[0])
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	d, err := parseRecordHex("d", lines[1])
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}

	return &keys.PrivateKey{N: n, D: d}, nil
}

// readRecordLines returns the first count lines of r. Lines after them are ignored.
func readRecordLines(r io.Reader, count int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	lines := make([]string, 0, count)
	for len(lines) < count && scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	if len(lines) < count {
		return nil, fmt.Errorf("expected %d lines, got %d: %w", count, len(lines), keys.ErrMalformedKeyRecord)
	}
	return lines, nil
}

func parseRecordHex(name, line string) (*big.Int, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '+' || line[0] == '-' {
		return nil, fmt.Errorf("field %s %q is not a hex integer: %w", name, line, keys.ErrMalformedKeyRecord)
	}
	x, ok := new(big.Int).SetString(line, 16)
	if !ok {
		return nil, fmt.Errorf("field %s %q is not a hex integer: %w", name, line, keys.ErrMalformedKeyRecord)
	}
	return x, nil
}
