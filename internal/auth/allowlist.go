// Package auth handles SSH public key authentication via allowlist.
package auth

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// ErrNotFound is returned when the allowlist file doesn't exist.
var ErrNotFound = errors.New("allowlist file not found")

// Allowlist holds the parsed public keys permitted to open sessions.
type Allowlist struct {
	keys []ssh.PublicKey
}

// Load reads an OpenSSH authorized_keys format file and returns the parsed
// allowlist. It skips empty lines, comments, and unparseable entries.
func Load(path string) (*Allowlist, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer file.Close()

	al := &Allowlist{}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pubKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(line))
		if err != nil {
			// Skip invalid lines but continue processing
			continue
		}

		al.keys = append(al.keys, pubKey)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return al, nil
}

// Allowed checks if the given public key is in the allowlist.
// It compares the marshaled key bytes for equality.
func (a *Allowlist) Allowed(key ssh.PublicKey) bool {
	if key == nil {
		return false
	}

	keyBytes := key.Marshal()
	for _, allowed := range a.keys {
		if bytes.Equal(keyBytes, allowed.Marshal()) {
			return true
		}
	}
	return false
}

// Len returns the number of keys in the allowlist.
func (a *Allowlist) Len() int {
	return len(a.keys)
}

// WriteTemplate creates an empty allowlist file with a helpful comment.
func WriteTemplate(path string) error {
	content := `# SSH Public Key Allowlist
# Add one public key per line in OpenSSH authorized_keys format.
# Example:
# ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIExample... user@host
`
	return os.WriteFile(path, []byte(content), 0644)
}
