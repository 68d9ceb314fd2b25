// Package mailbox locates candidate bank statement messages in an IMAP
// mailbox. A search scans a lookback window for statement-related subjects,
// identifies the sending bank, and collects PDF attachments as raw documents.
//
// Searches for different keywords run concurrently, each over its own
// connection. Result ordering is not significant; callers must treat the
// returned messages as an unordered batch.
package mailbox

import (
	"context"
	"strings"
	"sync"
	"time"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/parsererror"
	"finsight/finsight/internal/patterns"
)

// statementKeywords is the fixed set of subject keywords tried per search.
var statementKeywords = []string{
	"statement",
	"account statement",
	"bank statement",
	"e-statement",
	"monthly statement",
}

// DefaultKeywordCap bounds work per run: only the most recent N matches per
// search keyword are fetched.
const DefaultKeywordCap = 10

// Options configures one mailbox search.
type Options struct {
	LookbackDays int
	BankFilter   string // optional extra subject keyword
	KeywordCap   int    // most recent matches fetched per keyword; 0 = default
}

// Locator searches a mailbox for statement messages.
type Locator struct {
	dialer     Dialer
	library    *patterns.Library
	server     string
	address    string
	credential string
	logger     logging.Logger
	now        func() time.Time
}

// NewLocator creates a Locator for one mailbox account.
func NewLocator(dialer Dialer, library *patterns.Library, server, address, credential string, logger logging.Logger) *Locator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Locator{
		dialer:     dialer,
		library:    library,
		server:     server,
		address:    address,
		credential: credential,
		logger:     logger,
		now:        time.Now,
	}
}

// Search runs all keyword searches concurrently and returns every matching
// message carrying at least one PDF attachment. A connection failure aborts
// the whole search with nothing partial returned; a failure on an individual
// message skips only that message. Cancellation via ctx stops the search
// early; sessions are closed on every exit path.
func (l *Locator) Search(ctx context.Context, opts Options) ([]Message, error) {
	since := l.now().AddDate(0, 0, -opts.LookbackDays)
	limit := opts.KeywordCap
	if limit <= 0 {
		limit = DefaultKeywordCap
	}

	keywords := append([]string{}, statementKeywords...)
	if opts.BankFilter != "" {
		keywords = append(keywords, strings.ToLower(opts.BankFilter))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		messages []Message
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	for _, keyword := range keywords {
		wg.Add(1)
		go func(keyword string) {
			defer wg.Done()
			found, err := l.searchKeyword(ctx, keyword, since, limit)
			if err != nil {
				fail(err)
				return
			}
			mu.Lock()
			messages = append(messages, found...)
			mu.Unlock()
		}(keyword)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	l.logger.Info("Mailbox search complete",
		logging.Field{Key: "keywords", Value: len(keywords)},
		logging.Field{Key: "messages", Value: len(messages)})
	return messages, nil
}

// searchKeyword runs one keyword search over its own session. Only the most
// recent limit matches are fetched.
func (l *Locator) searchKeyword(ctx context.Context, keyword string, since time.Time, limit int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session, err := l.dialer.Dial(l.server, l.address, l.credential)
	if err != nil {
		return nil, &parsererror.ConnectionError{Server: l.server, Err: err}
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close mailbox session")
		}
	}()

	ids, err := session.Search(since, keyword)
	if err != nil {
		// A failed search for one keyword skips that keyword only.
		l.logger.WithError(err).Warn("Mailbox search failed for keyword",
			logging.Field{Key: "keyword", Value: keyword})
		return nil, nil
	}
	if len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}

	var messages []Message
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := session.Fetch(id)
		if err != nil {
			l.logger.WithError(&parsererror.FetchError{MessageID: id, Err: err}).
				Warn("Skipping message")
			continue
		}
		msg, err := parseMessage(raw, l.library)
		if err != nil {
			l.logger.WithError(err).Warn("Skipping malformed message",
				logging.Field{Key: "id", Value: id})
			continue
		}
		if len(msg.Attachments) == 0 {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
