// Package pemfile creates the SSH host key of the server.
package pemfile

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"

	gossh "golang.org/x/crypto/ssh"
)

const DefaultBits = 4096

type KeyParams struct {
	KeyPath       string
	SSHPubKeyPath string
	// Bits defaults to DefaultBits.
	Bits int
}

// Generate writes a new RSA private key as PEM to KeyPath, and its public
// half in authorized_keys format to SSHPubKeyPath.
func (k KeyParams) Generate() error {
	bits := k.Bits
	if bits == 0 {
		bits = DefaultBits
	}
	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return spoilers.WithStack(err)
	}
	keyBytes := x509.MarshalPKCS1PrivateKey(privateKey)

	if err := os.WriteFile(k.KeyPath, pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: keyBytes,
		}),
		0600,
	); err != nil {
		return spoilers.WithStack(err)
	}

	pub, err := gossh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return spoilers.WithStack(err)
	}
	if err := os.WriteFile(k.SSHPubKeyPath, gossh.MarshalAuthorizedKey(pub), 0600); err != nil {
		return spoilers.WithStack(err)
	}
	return nil
}

// Ensure generates the key pair unless KeyPath already exists, and returns
// the private key PEM.
func (k KeyParams) Ensure() (pemBytes []byte, generated bool, err error) {
	if _, err := os.Stat(k.KeyPath); os.IsNotExist(err) {
		if err := k.Generate(); err != nil {
			return nil, false, err
		}
		generated = true
	} else if err != nil {
		return nil, false, spoilers.WithStack(err)
	}
	if pemBytes, err = os.ReadFile(k.KeyPath); err != nil {
		return nil, false, spoilers.WithStack(err)
	}
	return pemBytes, generated, nil
}
