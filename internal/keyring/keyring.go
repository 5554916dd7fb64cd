// Package keyring stores the PostgreSQL export connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/timegrid/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("connection string not found in keyring")
	// ErrUnavailable is returned when the OS keyring cannot be reached
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Origin records where a resolved connection string came from.
type Origin string

const (
	OriginEnv     Origin = "environment"
	OriginKeyring Origin = "keyring"
)

// GetConnectionString returns the stored connection string, or ErrNotFound.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr in the OS keyring.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string.
func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe of the OS keyring.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Resolve finds the export connection string, preferring the
// TIMEGRID_DB_CONNECTION environment variable over the keyring.
func Resolve() (string, Origin, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.EnvConnection)); connStr != "" {
		return connStr, OriginEnv, nil
	}
	connStr, err := GetConnectionString()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", fmt.Errorf("no connection string: set %s or run 'timegrid keyring set': %w", constants.EnvConnection, err)
		}
		return "", "", err
	}
	return connStr, OriginKeyring, nil
}
