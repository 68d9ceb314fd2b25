// Package parsererror defines the typed errors shared across the ingestion
// pipeline. Expected negative outcomes (a wrong password, an unmatched line)
// are modelled as result values elsewhere; the types here cover genuine faults.
package parsererror

import "fmt"

// ConnectionError represents a failure to establish or authenticate a mailbox
// session. It is fatal to the whole search that required the connection.
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mailbox connection to %s failed: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// FetchError represents a failure to fetch or decode a single message.
// Callers recover locally: the message is skipped and the search continues.
type FetchError struct {
	MessageID uint32
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch message %d: %v", e.MessageID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
