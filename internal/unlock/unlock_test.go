package unlock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/passwords"
)

var testInfo = passwords.PersonalInfo{
	DateOfBirth: "15011990",
	Mobile:      "9876543210",
	Account:     "12345678901234",
}

func TestUnlockUnencryptedPassthrough(t *testing.T) {
	unlocker := NewUnlocker(&MockDecryptor{Encrypted: false}, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("plain"), Bank: models.BankHDFC}
	result, err := unlocker.Unlock(doc, testInfo, "")

	require.NoError(t, err)
	assert.True(t, result.Unlocked)
	assert.Zero(t, result.Attempts)
	assert.Equal(t, []byte("plain"), result.Document.Content)
	assert.Empty(t, result.Document.Password, "no password attempted")
}

func TestUnlockFirstCandidateWins(t *testing.T) {
	decryptor := &MockDecryptor{
		Encrypted: true,
		Password:  "15011990", // DOB verbatim, first candidate for HDFC
		Plaintext: []byte("decrypted"),
	}
	unlocker := NewUnlocker(decryptor, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("cipher"), Bank: models.BankHDFC}
	result, err := unlocker.Unlock(doc, testInfo, "")

	require.NoError(t, err)
	assert.True(t, result.Unlocked)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, "15011990", result.Document.Password)
	assert.Equal(t, []byte("decrypted"), result.Document.Content)
}

func TestUnlockLaterCandidate(t *testing.T) {
	decryptor := &MockDecryptor{
		Encrypted: true,
		Password:  "3210", // mobile last 4, second candidate for Axis
		Plaintext: []byte("decrypted"),
	}
	unlocker := NewUnlocker(decryptor, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("cipher"), Bank: models.BankAxis}
	result, err := unlocker.Unlock(doc, testInfo, "")

	require.NoError(t, err)
	assert.True(t, result.Unlocked)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, "3210", result.Document.Password)
}

func TestUnlockCustomPasswordTriedFirst(t *testing.T) {
	decryptor := &MockDecryptor{
		Encrypted: true,
		Password:  "mysecret",
		Plaintext: []byte("decrypted"),
	}
	unlocker := NewUnlocker(decryptor, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("cipher"), Bank: models.BankHDFC}
	result, err := unlocker.Unlock(doc, testInfo, "mysecret")

	require.NoError(t, err)
	assert.True(t, result.Unlocked)
	assert.Equal(t, 1, result.Attempts)
}

func TestUnlockExhaustionIsNotAnError(t *testing.T) {
	decryptor := &MockDecryptor{
		Encrypted: true,
		Password:  "nothing-derivable-matches",
	}
	unlocker := NewUnlocker(decryptor, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("cipher"), Bank: models.BankHDFC}
	result, err := unlocker.Unlock(doc, testInfo, "")

	require.NoError(t, err, "exhausted candidates must not surface as an error")
	assert.False(t, result.Unlocked)
	assert.Equal(t, 1, result.Attempts, "HDFC derives only the DOB here (no tax id given)")
}

func TestUnlockEmptyCandidateList(t *testing.T) {
	unlocker := NewUnlocker(&MockDecryptor{Encrypted: true}, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("cipher"), Bank: models.BankHDFC}
	result, err := unlocker.Unlock(doc, passwords.PersonalInfo{}, "")

	require.NoError(t, err)
	assert.False(t, result.Unlocked)
	assert.Zero(t, result.Attempts)
}

func TestUnlockDecryptorFault(t *testing.T) {
	decryptor := &MockDecryptor{Err: errors.New("corrupt xref table")}
	unlocker := NewUnlocker(decryptor, logging.NewMockLogger())

	doc := models.RawDocument{Filename: "stmt.pdf", Content: []byte("junk"), Bank: models.BankHDFC}
	_, err := unlocker.Unlock(doc, testInfo, "")
	assert.Error(t, err)
}
