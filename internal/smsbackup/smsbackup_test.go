package smsbackup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `timestamp,sender,message
2024-01-15 10:30:00,HDFCBK,Rs.500 debited from A/c XX1234 at SWIGGY on 15/01/2024
2024-01-16 09:00:00,ICICIB,Rs.250 debited at UBER
bad-timestamp,AXISBK,Rs.100 debited
`

func TestParseCSV(t *testing.T) {
	messages, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, messages, 3)

	assert.Equal(t, "HDFCBK", messages[0].Sender)
	assert.Contains(t, messages[0].Text, "SWIGGY")
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), messages[0].ReceivedAt)

	assert.Equal(t, "ICICIB", messages[1].Sender)

	// Bad timestamps keep the message with a zero time.
	assert.True(t, messages[2].ReceivedAt.IsZero())
	assert.Equal(t, "Rs.100 debited", messages[2].Text)
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("not,a,backup\njust;random;text"))
	// gocsv tolerates unknown headers; rows simply map to empty fields.
	if err != nil {
		assert.Contains(t, err.Error(), "sms-backup-csv")
	}
}

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<smses count="3">
  <sms address="VM-HDFCBK" date="1705314600000" body="Rs.500 debited from A/c XX1234 at SWIGGY" />
  <sms address="ICICIB" date="1705395600000" body="Rs.250 credited to A/c XX9876" />
  <sms address="SPAM" date="1705395600000" body="" />
</smses>
`

func TestParseXML(t *testing.T) {
	messages, err := ParseXML(strings.NewReader(sampleXML))
	require.NoError(t, err)
	require.Len(t, messages, 2, "entries without a body are skipped")

	assert.Equal(t, "VM-HDFCBK", messages[0].Sender)
	assert.Contains(t, messages[0].Text, "SWIGGY")
	assert.Equal(t, time.UnixMilli(1705314600000), messages[0].ReceivedAt)

	assert.Equal(t, "ICICIB", messages[1].Sender)
}

func TestParseXMLMalformed(t *testing.T) {
	_, err := ParseXML(strings.NewReader("<smses><sms"))
	assert.Error(t, err)
}

func TestParseFileDispatch(t *testing.T) {
	messages, err := ParseFile(strings.NewReader(sampleXML), "backup.XML")
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	messages, err = ParseFile(strings.NewReader(sampleCSV), "backup.csv")
	require.NoError(t, err)
	assert.Len(t, messages, 3)

	_, err = ParseFile(strings.NewReader(""), "backup.txt")
	assert.Error(t, err)
}
