package mailbox

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// Session is one open, exclusively owned mailbox connection. Sessions are not
// shared or pooled: each concurrent search opens its own to avoid
// protocol-level interleaving.
type Session interface {
	// Search returns the ids of inbox messages received since the given date
	// whose subject contains the keyword.
	Search(since time.Time, subjectKeyword string) ([]uint32, error)

	// Fetch returns the full raw message bytes for one id.
	Fetch(id uint32) ([]byte, error)

	// Close releases the connection. Safe to call on every exit path.
	Close() error
}

// Dialer opens mailbox sessions. The production implementation speaks IMAP;
// tests substitute fakes.
type Dialer interface {
	Dial(server, address, credential string) (Session, error)
}

// IMAPDialer connects to an IMAP server over TLS and logs in with the
// supplied credential (an app password, not the account password).
type IMAPDialer struct{}

// Dial opens a session and selects the inbox read-only.
func (IMAPDialer) Dial(server, address, credential string) (Session, error) {
	c, err := client.DialTLS(server, nil)
	if err != nil {
		return nil, err
	}
	if err := c.Login(address, credential); err != nil {
		_ = c.Logout()
		return nil, err
	}
	if _, err := c.Select("INBOX", true); err != nil {
		_ = c.Logout()
		return nil, err
	}
	return &imapSession{client: c}, nil
}

type imapSession struct {
	client *client.Client
}

func (s *imapSession) Search(since time.Time, subjectKeyword string) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	criteria.Since = since
	criteria.Header.Add("Subject", subjectKeyword)
	return s.client.Search(criteria)
}

func (s *imapSession) Fetch(id uint32) ([]byte, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(id)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, 1)
	if err := s.client.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, messages); err != nil {
		return nil, err
	}

	msg := <-messages
	if msg == nil {
		return nil, fmt.Errorf("no data returned for message %d", id)
	}
	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("message %d has no body section", id)
	}
	return io.ReadAll(body)
}

func (s *imapSession) Close() error {
	return s.client.Logout()
}
