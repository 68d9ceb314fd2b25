package unlock

import (
	"bytes"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Decryptor abstracts the document decryption collaborator. Implementations
// must treat a wrong password as a normal negative result, never as an error.
type Decryptor interface {
	// IsEncrypted reports whether the document requires a password.
	IsEncrypted(content []byte) (bool, error)

	// Decrypt attempts to open the document with the given password. The
	// boolean is false when the password did not match; an error is returned
	// only for genuine faults (corrupt file, IO failure).
	Decrypt(content []byte, password string) ([]byte, bool, error)
}

// PdfcpuDecryptor implements Decryptor on top of the pdfcpu library.
type PdfcpuDecryptor struct{}

// NewPdfcpuDecryptor creates the production Decryptor implementation.
func NewPdfcpuDecryptor() *PdfcpuDecryptor {
	return &PdfcpuDecryptor{}
}

// IsEncrypted reports whether the PDF carries password protection.
func (d *PdfcpuDecryptor) IsEncrypted(content []byte) (bool, error) {
	_, err := api.ReadContext(bytes.NewReader(content), model.NewDefaultConfiguration())
	if err == nil {
		return false, nil
	}
	if isPasswordError(err) {
		return true, nil
	}
	return false, err
}

// Decrypt opens the PDF with the given password and returns the decrypted
// bytes. A rejected password yields (nil, false, nil).
func (d *PdfcpuDecryptor) Decrypt(content []byte, password string) ([]byte, bool, error) {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password

	var out bytes.Buffer
	if err := api.Decrypt(bytes.NewReader(content), &out, conf); err != nil {
		if isPasswordError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return out.Bytes(), true, nil
}

// isPasswordError recognizes pdfcpu's authentication failures, which it
// reports as plain errors mentioning the password.
func isPasswordError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "password")
}

// MockDecryptor implements Decryptor for tests. It accepts a single password
// and returns predefined plaintext.
type MockDecryptor struct {
	Encrypted bool
	Password  string
	Plaintext []byte
	Err       error
}

// IsEncrypted returns the predefined encryption flag or error.
func (m *MockDecryptor) IsEncrypted(content []byte) (bool, error) {
	return m.Encrypted, m.Err
}

// Decrypt succeeds only for the configured password.
func (m *MockDecryptor) Decrypt(content []byte, password string) ([]byte, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	if password == m.Password {
		return m.Plaintext, true, nil
	}
	return nil, false, nil
}
