//go:build windows

package security

import (
	"github.com/danieljoos/wincred"
)

// CredentialTarget names the stored credential, shared across platforms.
const CredentialTarget = "pytoy_index_token"

// SaveToken persists token to the Windows Credential Manager.
func SaveToken(token string) error {
	cred := wincred.NewGenericCredential(CredentialTarget)
	cred.CredentialBlob = []byte(token)
	cred.Persist = wincred.PersistSession
	return cred.Write()
}

// GetToken reads back the token saved by SaveToken.
func GetToken() (string, error) {
	cred, err := wincred.GetGenericCredential(CredentialTarget)
	if err != nil {
		return "", err
	}
	return string(cred.CredentialBlob), nil
}

// RevokeToken deletes the stored token.
func RevokeToken() error {
	cred, err := wincred.GetGenericCredential(CredentialTarget)
	if err != nil {
		return err
	}
	return cred.Delete()
}
