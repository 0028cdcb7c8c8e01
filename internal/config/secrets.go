package config

import "github.com/zalando/go-keyring"

// keyringService namespaces sqlab entries in the OS keychain.
const keyringService = "sqlab"

// SetPassword stores a connection password in the OS keychain.
func SetPassword(connectionName, password string) error {
	return keyring.Set(keyringService, connectionName, password)
}

// GetPassword retrieves a connection password from the OS keychain.
func GetPassword(connectionName string) (string, error) {
	return keyring.Get(keyringService, connectionName)
}

// DeletePassword removes a stored connection password.
func DeletePassword(connectionName string) error {
	err := keyring.Delete(keyringService, connectionName)
	if err == keyring.ErrNotFound {
		return nil
	}
	return err
}
