// Package smsbackup parses phone SMS backup exports into forwarded messages
// for the SMS ingestion run. Two formats are supported: the CSV layout
// (timestamp,sender,message) and the Android "SMS Backup & Restore" XML
// format.
package smsbackup

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gopkg.in/xmlpath.v2"

	"finsight/finsight/internal/ingest"
	"finsight/finsight/internal/parsererror"
)

// csvTimestampLayout matches the export format of common SMS backup apps.
const csvTimestampLayout = "2006-01-02 15:04:05"

type csvRecord struct {
	Timestamp string `csv:"timestamp"`
	Sender    string `csv:"sender"`
	Message   string `csv:"message"`
}

// ParseCSV reads a CSV backup. Rows with an unparseable timestamp keep a
// zero ReceivedAt; the message itself is still submitted.
func ParseCSV(r io.Reader) ([]ingest.ForwardedSMS, error) {
	var records []csvRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, &parsererror.ParseError{
			Parser: "sms-backup-csv",
			Field:  "records",
			Value:  "csv stream",
			Err:    err,
		}
	}

	messages := make([]ingest.ForwardedSMS, 0, len(records))
	for _, record := range records {
		msg := ingest.ForwardedSMS{Sender: record.Sender, Text: record.Message}
		if t, err := time.Parse(csvTimestampLayout, record.Timestamp); err == nil {
			msg.ReceivedAt = t
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

var (
	smsPath     = xmlpath.MustCompile("/smses/sms")
	addressPath = xmlpath.MustCompile("@address")
	bodyPath    = xmlpath.MustCompile("@body")
	datePath    = xmlpath.MustCompile("@date")
)

// ParseXML reads an Android SMS backup XML document. The date attribute is
// epoch milliseconds; entries without a body are skipped.
func ParseXML(r io.Reader) ([]ingest.ForwardedSMS, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "sms-backup-xml",
			Field:  "document",
			Value:  "xml stream",
			Err:    err,
		}
	}

	var messages []ingest.ForwardedSMS
	iter := smsPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		body, ok := bodyPath.String(node)
		if !ok || body == "" {
			continue
		}

		msg := ingest.ForwardedSMS{Text: body}
		if sender, ok := addressPath.String(node); ok {
			msg.Sender = sender
		}
		if raw, ok := datePath.String(node); ok {
			if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
				msg.ReceivedAt = time.UnixMilli(millis)
			}
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ParseFile dispatches on the file extension: ".xml" is parsed as an Android
// backup, anything else as CSV.
func ParseFile(r io.Reader, filename string) ([]ingest.ForwardedSMS, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".xml"):
		return ParseXML(r)
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return ParseCSV(r)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       filename,
			ExpectedFormat: ".csv or .xml",
			Msg:            "unsupported SMS backup format",
		}
	}
}
