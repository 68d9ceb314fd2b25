package mailbox

import (
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"

	"finsight/finsight/internal/models"
	"finsight/finsight/internal/patterns"
)

// Message is one mailbox message that matched a statement search, with its
// PDF attachments collected as raw documents.
type Message struct {
	Subject     string
	From        string
	Bank        models.Bank
	Attachments []models.RawDocument
}

// parseMessage decodes a raw RFC 822 message, identifies the sending bank
// from sender address and subject, and collects every PDF-shaped attachment.
// The mail reader handles encoded-word subjects and multipart traversal.
func parseMessage(raw []byte, library *patterns.Library) (Message, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return Message{}, err
	}

	subject, _ := mr.Header.Subject()
	var from string
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		from = addrs[0].Address
	}
	bank := library.DetectBank(from, subject)

	msg := Message{Subject: subject, From: from, Bank: bank}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Message{}, err
		}

		header, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}
		filename, _ := header.Filename()
		if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			continue
		}
		content, err := io.ReadAll(part.Body)
		if err != nil {
			return Message{}, err
		}
		msg.Attachments = append(msg.Attachments, models.RawDocument{
			Filename: filename,
			Content:  content,
			Bank:     bank,
		})
	}
	return msg, nil
}
