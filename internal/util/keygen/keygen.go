// Package keygen generates SSH keypairs for bastion access.
package keygen

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// DefaultBits is the RSA key size used when none is configured.
const DefaultBits = 4096

// Pair holds a generated SSH keypair. The private key never leaves the
// caller; only the authorized-key form is pushed to the cloud.
type Pair struct {
	PrivateKeyPEM string
	AuthorizedKey string
}

// Generate creates a new RSA keypair of the given size.
func Generate(bits int) (*Pair, error) {
	if bits <= 0 {
		bits = DefaultBits
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive SSH public key: %w", err)
	}

	return &Pair{
		PrivateKeyPEM: string(privPEM),
		AuthorizedKey: string(ssh.MarshalAuthorizedKey(pub)),
	}, nil
}
