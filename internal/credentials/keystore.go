package credentials

import (
	"os"

	"github.com/zalando/go-keyring"
)

const (
	keystoreService = "portfoliodesk"
	keystoreUser    = "backend-token"
)

// BackendToken returns the backend API token, preferring the OS keychain
// and falling back to the BACKEND_TOKEN environment variable. On Linux
// without a keyring daemon the env fallback is the normal path.
func BackendToken() string {
	if token, err := keyring.Get(keystoreService, keystoreUser); err == nil && token != "" {
		return token
	}
	return os.Getenv("BACKEND_TOKEN")
}

// StoreBackendToken saves the token in the system keychain
func StoreBackendToken(token string) error {
	return keyring.Set(keystoreService, keystoreUser, token)
}

// DeleteBackendToken removes the token from the keychain
// Useful for logout or reset scenarios
func DeleteBackendToken() error {
	return keyring.Delete(keystoreService, keystoreUser)
}

// IsTokenStored checks if a token exists in the keychain
func IsTokenStored() bool {
	_, err := keyring.Get(keystoreService, keystoreUser)
	return err == nil
}
