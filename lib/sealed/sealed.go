// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"

	"github.com/garnix-insights/garnix-insights/lib/secret"
)

// Keypair is an age X25519 identity and its public recipient.
type Keypair struct {
	// Identity is the AGE-SECRET-KEY-1... string.
	Identity *secret.Buffer

	// Recipient is the age1... public key.
	Recipient string
}

// Close releases the identity memory.
func (k *Keypair) Close() error {
	if k.Identity != nil {
		return k.Identity.Close()
	}
	return nil
}

// GenerateKeypair creates a fresh X25519 identity.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generating age identity: %w", err)
	}
	buffer, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("protecting age identity: %w", err)
	}
	return &Keypair{
		Identity:  buffer,
		Recipient: identity.Recipient().String(),
	}, nil
}

// ParseRecipient reports whether recipient is a valid age1... key.
func ParseRecipient(recipient string) error {
	if _, err := age.ParseX25519Recipient(recipient); err != nil {
		return fmt.Errorf("invalid age recipient: %w", err)
	}
	return nil
}

// Seal encrypts plaintext to every recipient and returns an armored
// age file.
func Seal(plaintext []byte, recipients []string) ([]byte, error) {
	if len(recipients) == 0 {
		return nil, errors.New("at least one recipient is required")
	}
	parsed := make([]age.Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		value, err := age.ParseX25519Recipient(recipient)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient %q: %w", recipient, err)
		}
		parsed = append(parsed, value)
	}

	var output bytes.Buffer
	armored := armor.NewWriter(&output)
	writer, err := age.Encrypt(armored, parsed...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return nil, fmt.Errorf("writing plaintext: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	if err := armored.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return output.Bytes(), nil
}

// Open decrypts an armored or binary age file with the identities in
// identityFile (the contents of an age identity file). The plaintext is
// trimmed of surrounding whitespace.
func Open(ciphertext io.Reader, identityFile *secret.Buffer) (*secret.Buffer, error) {
	identities, err := age.ParseIdentities(bytes.NewReader(identityFile.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("parsing age identities: %w", err)
	}

	source := bufio.NewReader(ciphertext)
	var input io.Reader = source
	if start, _ := source.Peek(len(armor.Header)); string(start) == armor.Header {
		input = armor.NewReader(source)
	}

	plaintext, err := age.Decrypt(input, identities...)
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	return secret.ReadFrom(plaintext)
}

// OpenFile decrypts the sealed token at tokenPath using the identity
// file at identityPath.
func OpenFile(tokenPath, identityPath string) (*secret.Buffer, error) {
	if identityPath == "" {
		return nil, fmt.Errorf("%s is sealed but no identity file is configured", tokenPath)
	}
	identity, err := secret.ReadFile(identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity: %w", err)
	}
	defer identity.Close()

	file, err := os.Open(tokenPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	token, err := Open(file, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tokenPath, err)
	}
	return token, nil
}
