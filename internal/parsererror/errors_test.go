package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &ConnectionError{Server: "imap.example.com:993", Err: cause}

	assert.Contains(t, err.Error(), "imap.example.com:993")
	assert.ErrorIs(t, err, cause)
}

func TestFetchError(t *testing.T) {
	cause := errors.New("timeout")
	err := &FetchError{MessageID: 42, Err: cause}

	assert.Contains(t, err.Error(), "42")
	assert.ErrorIs(t, err, cause)
}

func TestParseError(t *testing.T) {
	cause := errors.New("bad syntax")
	err := &ParseError{Parser: "sms-backup-csv", Field: "records", Value: "stream", Err: cause}

	assert.Contains(t, err.Error(), "sms-backup-csv")
	assert.Contains(t, err.Error(), "records")
	assert.ErrorIs(t, err, cause)
}

func TestErrorAsThroughWrapping(t *testing.T) {
	inner := &FetchError{MessageID: 7, Err: errors.New("broken pipe")}
	var fetchErr *FetchError
	assert.ErrorAs(t, error(inner), &fetchErr)
	assert.Equal(t, uint32(7), fetchErr.MessageID)
}
