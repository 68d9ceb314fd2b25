// Package unlock opens encrypted bank statement documents by trying password
// candidates derived from the bank's password policy, strictly in order,
// stopping at the first success.
package unlock

import (
	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/passwords"
)

// Result is the outcome of an unlock attempt. Exhausting the candidate list
// without a match is a distinguishable failure, not an error, so a caller can
// report it per document and keep processing a batch.
type Result struct {
	Unlocked bool
	Document models.UnlockedDocument
	Attempts int // password candidates tried
}

// Unlocker opens documents with a Decryptor and the password candidate
// generator. Candidate trial order is fully deterministic: re-running on the
// same inputs yields the same outcome and, on success, the same password.
type Unlocker struct {
	decryptor Decryptor
	logger    logging.Logger
}

// NewUnlocker creates an Unlocker. A nil logger falls back to the default.
func NewUnlocker(decryptor Decryptor, logger logging.Logger) *Unlocker {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Unlocker{decryptor: decryptor, logger: logger}
}

// Unlock opens the document. Unencrypted documents are returned unchanged
// with no password attempted. For encrypted documents, candidates are tried
// sequentially; the first match wins. An error is returned only for genuine
// decryption faults, never for an exhausted candidate list.
func (u *Unlocker) Unlock(doc models.RawDocument, info passwords.PersonalInfo, custom string) (Result, error) {
	encrypted, err := u.decryptor.IsEncrypted(doc.Content)
	if err != nil {
		return Result{}, err
	}

	if !encrypted {
		return Result{
			Unlocked: true,
			Document: models.UnlockedDocument{
				Filename: doc.Filename,
				Content:  doc.Content,
				Bank:     doc.Bank,
			},
		}, nil
	}

	candidates := passwords.Generate(doc.Bank, info, custom)
	for i, password := range candidates {
		content, ok, err := u.decryptor.Decrypt(doc.Content, password)
		if err != nil {
			return Result{Attempts: i + 1}, err
		}
		if ok {
			u.logger.Info("Document unlocked",
				logging.Field{Key: "file", Value: doc.Filename},
				logging.Field{Key: "bank", Value: doc.Bank.String()},
				logging.Field{Key: "attempts", Value: i + 1})
			return Result{
				Unlocked: true,
				Document: models.UnlockedDocument{
					Filename: doc.Filename,
					Content:  content,
					Bank:     doc.Bank,
					Password: password,
				},
				Attempts: i + 1,
			}, nil
		}
	}

	u.logger.Warn("Document unlock failed, candidate list exhausted",
		logging.Field{Key: "file", Value: doc.Filename},
		logging.Field{Key: "bank", Value: doc.Bank.String()},
		logging.Field{Key: "candidates", Value: len(candidates)})
	return Result{Attempts: len(candidates)}, nil
}
