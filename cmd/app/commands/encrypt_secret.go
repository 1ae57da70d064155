package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	secretsService "github.com/allisson/authcore/internal/secrets/service"
)

// RunEncryptSecret encrypts a single plaintext value and prints the {token, iv, key} entry to
// paste into the secrets bundle under the chosen environment and name. When value is empty the
// first line of reader is used instead.
//
// Security Note: the printed entry carries its own key. Store the bundle accordingly.
func RunEncryptSecret(
	cipher secretsService.CredentialCipher,
	logger *slog.Logger,
	ioTuple IOTuple,
	value string,
) error {
	if value == "" {
		line, err := bufio.NewReader(ioTuple.Reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read secret value: %w", err)
		}
		value = strings.TrimRight(line, "\r\n")
	}
	if value == "" {
		return errors.New("secret value must not be empty")
	}

	entry, err := cipher.EncryptEntry(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt secret: %w", err)
	}

	if err := writeJSON(ioTuple.Writer, entry); err != nil {
		return err
	}

	logger.Info("secret encrypted")
	return nil
}
