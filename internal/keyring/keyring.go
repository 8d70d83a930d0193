package keyring

import (
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/caretend/caretend/internal/constants"
)

// The care circle connection string carries database credentials, so it
// lives in the OS keyring rather than in a config file on disk.

func SetConnectionString(connString string) error {
	if err := keyring.Set(constants.KeyringService, constants.KeyringConnectionKey, connString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func GetConnectionString() (string, error) {
	connString, err := keyring.Get(constants.KeyringService, constants.KeyringConnectionKey)
	if err == keyring.ErrNotFound {
		return "", fmt.Errorf("no care circle connection configured, run 'caretend circle connect' first")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read connection string from keyring: %w", err)
	}
	return connString, nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.KeyringService, constants.KeyringConnectionKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to remove connection string from keyring: %w", err)
	}
	return nil
}

// HasConnectionString reports whether a circle connection is configured
// without surfacing keyring errors; absence and failure both read as no.
func HasConnectionString() bool {
	_, err := keyring.Get(constants.KeyringService, constants.KeyringConnectionKey)
	return err == nil
}
