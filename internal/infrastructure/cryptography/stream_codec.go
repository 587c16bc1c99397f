package cryptography

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MGTheTrain/rsa-vault/internal/domain/cryptoalg"
	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"
	"github.com/MGTheTrain/rsa-vault/internal/pkg/logger"
)

// sentinel is the most significant byte of every plaintext block. It keeps leading
// zero payload bytes and bounds the block integer below n.
const sentinel byte = 0xFF

// streamCodec struct that implements the StreamCodec interface
type streamCodec struct {
	processor cryptoalg.RSAProcessor
	logger    logger.Logger
}

// NewStreamCodec creates a codec that drives processor's scalar encrypt and decrypt.
func NewStreamCodec(processor cryptoalg.RSAProcessor, logger logger.Logger) (cryptoalg.StreamCodec, error) {
	if processor == nil {
		return nil, fmt.Errorf("rsa processor cannot be nil")
	}
	return &streamCodec{
		processor: processor,
		logger:    logger,
	}, nil
}

// BlockSize returns the width in bytes of a plaintext block for modulus n,
// floor((bitlen(n) - 1) / 8), so that every block integer is below n.
func BlockSize(n *big.Int) (int, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, fmt.Errorf("modulus must be positive: %w", keys.ErrKeyTooSmall)
	}
	k := (n.BitLen() - 1) / 8
	if k < 2 {
		return 0, fmt.Errorf("%d-bit modulus leaves no payload byte per block: %w", n.BitLen(), keys.ErrKeyTooSmall)
	}
	return k, nil
}

// EncryptStream reads r in chunks of k-1 bytes, prefixes each with the sentinel,
// encrypts the resulting integer and writes it as one hex line.
func (c *streamCodec) EncryptStream(r io.Reader, w io.Writer, pub *keys.PublicKey) (int, error) {
	if pub == nil {
		return 0, fmt.Errorf("public key cannot be nil")
	}
	k, err := BlockSize(pub.N)
	if err != nil {
		return 0, err
	}

	out := bufio.NewWriter(w)
	block := make([]byte, k)
	block[0] = sentinel

	blocks := 0
	for {
		read, readErr := io.ReadFull(r, block[1:])
		if read > 0 {
			m := packBlock(block[:read+1])
			ct := c.processor.Encrypt(m, pub.E, pub.N)
			if _, err := fmt.Fprintf(out, "%x\n", ct); err != nil {
				return blocks, fmt.Errorf("failed to write ciphertext block %d: %w", blocks, err)
			}
			blocks++
		}

		if readErr == io.EOF || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			return blocks, fmt.Errorf("failed to read plaintext block %d: %w", blocks, readErr)
		}
	}

	if err := out.Flush(); err != nil {
		return blocks, fmt.Errorf("failed to flush ciphertext: %w", err)
	}

	c.logger.Debug("Encrypted stream", "blocks", blocks, "block_size", k)
	return blocks, nil
}

// DecryptStream reads one newline-terminated hex record at a time and stops as
// soon as no further record is available.
func (c *streamCodec) DecryptStream(r io.Reader, w io.Writer, priv *keys.PrivateKey) (int, error) {
	if priv == nil {
		return 0, fmt.Errorf("private key cannot be nil")
	}
	k, err := BlockSize(priv.N)
	if err != nil {
		return 0, err
	}

	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	blocks := 0
	for {
		line, readErr := in.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return blocks, fmt.Errorf("failed to read ciphertext block %d: %w", blocks, readErr)
		}
		if readErr == io.EOF {
			if line != "" {
				return blocks, fmt.Errorf("block %d ends without newline: %w", blocks, keys.ErrStreamFormat)
			}
			break
		}

		ct, err := parseCiphertext(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), priv.N)
		if err != nil {
			return blocks, fmt.Errorf("block %d: %w", blocks, err)
		}

		payload, err := unpackBlock(c.processor.Decrypt(ct, priv.D, priv.N), k)
		if err != nil {
			return blocks, fmt.Errorf("block %d: %w", blocks, err)
		}
		if _, err := out.Write(payload); err != nil {
			return blocks, fmt.Errorf("failed to write plaintext block %d: %w", blocks, err)
		}
		blocks++
	}

	if err := out.Flush(); err != nil {
		return blocks, fmt.Errorf("failed to flush plaintext: %w", err)
	}

	c.logger.Debug("Decrypted stream", "blocks", blocks, "block_size", k)
	return blocks, nil
}

func parseCiphertext(line string, n *big.Int) (*big.Int, error) {
	if line == "" || line[0] == '+' || line[0] == '-' {
		return nil, fmt.Errorf("%q is not a hex integer: %w", line, keys.ErrStreamFormat)
	}
	ct, ok := new(big.Int).SetString(line, 16)
	if !ok {
		return nil, fmt.Errorf("%q is not a hex integer: %w", line, keys.ErrStreamFormat)
	}
	if ct.Cmp(n) >= 0 {
		return nil, fmt.Errorf("ciphertext is not below the modulus: %w", keys.ErrStreamFormat)
	}
	return ct, nil
}

// packBlock reads block as a big-endian unsigned integer. block[0] must be the sentinel.
func packBlock(block []byte) *big.Int {
	m := new(big.Int)
	b := new(big.Int)
	for _, v := range block {
		m.Lsh(m, 8)
		m.Or(m, b.SetUint64(uint64(v)))
	}
	return m
}

// unpackBlock writes m into a k-byte big-endian buffer and returns the bytes that
// follow the sentinel. Anything but zero padding before the sentinel is rejected.
func unpackBlock(m *big.Int, k int) ([]byte, error) {
	if m.BitLen() > 8*k {
		return nil, fmt.Errorf("decrypted block exceeds %d bytes: %w", k, keys.ErrStreamFormat)
	}

	buf := make([]byte, k)
	x := new(big.Int).Set(m)
	low := new(big.Int)
	mask := big.NewInt(0xFF)
	for i := k - 1; i >= 0 && x.Sign() > 0; i-- {
		buf[i] = byte(low.And(x, mask).Uint64())
		x.Rsh(x, 8)
	}

	start := 0
	for start < k && buf[start] == 0 {
		start++
	}
	if start == k || buf[start] != sentinel {
		return nil, fmt.Errorf("decrypted block has no sentinel byte: %w", keys.ErrStreamFormat)
	}
	return buf[start+1:], nil
}
