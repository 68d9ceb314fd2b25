// Package ingest orchestrates the ingestion pipeline: locating statement
// messages, unlocking and extracting attachments, parsing forwarded SMS
// batches, and reconciling the results against the ledger.
//
// The pipeline is I/O-bound and embarrassingly parallel across independent
// units. Attachments are processed by a bounded worker pool; the only
// sequential dependency inside a single document is password candidate trial
// order, which stays strictly sequential. Nothing retries automatically: a
// failed unlock or fetch is reported as a per-item outcome and the caller
// decides whether to rerun the batch.
package ingest

import (
	"context"
	"sync"
	"time"

	"finsight/finsight/internal/logging"
	"finsight/finsight/internal/mailbox"
	"finsight/finsight/internal/models"
	"finsight/finsight/internal/passwords"
	"finsight/finsight/internal/reconcile"
	"finsight/finsight/internal/sms"
	"finsight/finsight/internal/statement"
	"finsight/finsight/internal/unlock"
)

// DefaultWorkers is the attachment worker pool size when none is configured.
const DefaultWorkers = 4

// Deps wires the pipeline's collaborators.
type Deps struct {
	Locator       *mailbox.Locator
	Unlocker      *unlock.Unlocker
	TextExtractor statement.TextExtractor
	Extractor     *statement.Extractor
	SMSParser     *sms.Parser
	Reconciler    *reconcile.Reconciler
	Logger        logging.Logger
	Workers       int
}

// Pipeline runs statement and SMS ingestion batches.
type Pipeline struct {
	deps Deps
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(deps Deps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = logging.GetLogger()
	}
	if deps.Workers <= 0 {
		deps.Workers = DefaultWorkers
	}
	return &Pipeline{deps: deps}
}

// StatementOptions configures one statement-ingestion run.
type StatementOptions struct {
	UserID         string
	Mailbox        mailbox.Options
	Personal       passwords.PersonalInfo
	CustomPassword string
}

// ForwardedSMS is one forwarded message submitted to an SMS run.
type ForwardedSMS struct {
	Sender     string
	Text       string
	ReceivedAt time.Time
}

// RunStatementSync executes a full statement-ingestion run. A mailbox
// connection failure is fatal and returns an error with nothing partial;
// every per-attachment failure is recorded in the result instead.
func (p *Pipeline) RunStatementSync(ctx context.Context, opts StatementOptions) (*models.StatementSyncResult, error) {
	messages, err := p.deps.Locator.Search(ctx, opts.Mailbox)
	if err != nil {
		return nil, err
	}

	result := &models.StatementSyncResult{MessagesFound: len(messages)}

	var docs []models.RawDocument
	for _, msg := range messages {
		docs = append(docs, msg.Attachments...)
	}
	result.AttachmentsFound = len(docs)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		candidates []models.TransactionCandidate
	)
	jobs := make(chan models.RawDocument)

	for i := 0; i < p.deps.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				extracted, failure := p.processAttachment(doc, opts)
				mu.Lock()
				if failure != nil {
					result.Failed = append(result.Failed, *failure)
				} else {
					result.AttachmentsProcessed++
					result.TransactionsFound += len(extracted)
					candidates = append(candidates, extracted...)
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, doc := range docs {
		select {
		case jobs <- doc:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reconciled, err := p.deps.Reconciler.Reconcile(ctx, opts.UserID, candidates)
	if err != nil {
		return nil, err
	}
	result.Candidates = reconciled.ToInsert
	result.Recurrences = reconciled.Recurrences

	p.deps.Logger.Info("Statement sync complete",
		logging.Field{Key: "messages", Value: result.MessagesFound},
		logging.Field{Key: "attachments", Value: result.AttachmentsFound},
		logging.Field{Key: "processed", Value: result.AttachmentsProcessed},
		logging.Field{Key: "transactions", Value: result.TransactionsFound},
		logging.Field{Key: "failed", Value: len(result.Failed)})
	return result, nil
}

// processAttachment unlocks one attachment and extracts its transactions.
// Failures come back as a named per-attachment reason, never an error, so
// the batch continues.
func (p *Pipeline) processAttachment(doc models.RawDocument, opts StatementOptions) ([]models.TransactionCandidate, *models.FailedAttachment) {
	unlocked, err := p.deps.Unlocker.Unlock(doc, opts.Personal, opts.CustomPassword)
	if err != nil {
		return nil, &models.FailedAttachment{Filename: doc.Filename, Reason: "unlock error: " + err.Error()}
	}
	if !unlocked.Unlocked {
		return nil, &models.FailedAttachment{Filename: doc.Filename, Reason: "password not matched"}
	}

	text, err := p.deps.TextExtractor.ExtractText(unlocked.Document.Content)
	if err != nil {
		return nil, &models.FailedAttachment{Filename: doc.Filename, Reason: "text extraction failed: " + err.Error()}
	}

	candidates := p.deps.Extractor.Extract(text)
	for i := range candidates {
		candidates[i].Bank = doc.Bank
	}
	return candidates, nil
}

// RunSMSSync parses a batch of forwarded SMS messages. Each message is
// independent, so parsing runs fully parallel; results keep submission order.
func (p *Pipeline) RunSMSSync(ctx context.Context, userID string, batch []ForwardedSMS) (*models.SMSSyncResult, error) {
	result := &models.SMSSyncResult{MessagesSubmitted: len(batch)}

	parsed := make([]*models.TransactionCandidate, len(batch))
	var wg sync.WaitGroup
	for i, msg := range batch {
		wg.Add(1)
		go func(i int, msg ForwardedSMS) {
			defer wg.Done()
			if candidate, ok := p.deps.SMSParser.Parse(msg.Text, msg.Sender); ok {
				parsed[i] = &candidate
			}
		}(i, msg)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []models.TransactionCandidate
	for _, candidate := range parsed {
		if candidate != nil {
			candidates = append(candidates, *candidate)
		}
	}
	result.TransactionsFound = len(candidates)

	reconciled, err := p.deps.Reconciler.Reconcile(ctx, userID, candidates)
	if err != nil {
		return nil, err
	}
	result.Candidates = reconciled.ToInsert
	result.DuplicatesSuppressed = reconciled.Suppressed
	result.Recurrences = reconciled.Recurrences

	p.deps.Logger.Info("SMS sync complete",
		logging.Field{Key: "submitted", Value: result.MessagesSubmitted},
		logging.Field{Key: "transactions", Value: result.TransactionsFound},
		logging.Field{Key: "suppressed", Value: result.DuplicatesSuppressed})
	return result, nil
}
