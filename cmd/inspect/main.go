// Command inspect dumps the badger keyspace of a chat-relay instance as a
// table: stored messages, read markers, unread counters, and pending
// idempotency tokens. Operator tooling only, never part of the runtime.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, read:, unread:, req:)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithLoggingLevel(badger.ERROR).
		WithReadOnly(true))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	rows := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(v []byte) error {
				kind, detail := describe(key, v)
				table.Append([]string{key, kind, detail})
				rows++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Scan failed: ", err)
	}

	color.Cyan.Printf("%d entries under prefix %q\n", rows, *prefix)
	table.Render()
}

// Stored value shapes, mirrored from the repositories package.
type storedMessage struct {
	ID      string `cbor:"1,keyasint"`
	Room    int    `cbor:"2,keyasint"`
	Sender  int64  `cbor:"3,keyasint"`
	Content string `cbor:"4,keyasint"`
	At      int64  `cbor:"5,keyasint"`
	Status  string `cbor:"6,keyasint"`
}

type storedMarker struct {
	Position string `cbor:"1,keyasint"`
	ReadAt   int64  `cbor:"2,keyasint"`
}

func describe(key string, value []byte) (string, string) {
	switch {
	case strings.HasPrefix(key, "msg:"):
		var m storedMessage
		if err := cbor.Unmarshal(value, &m); err != nil {
			return "MESSAGE", fmt.Sprintf("undecodable: %v", err)
		}
		content := m.Content
		if len(content) > 40 {
			content = content[:37] + "..."
		}
		return "MESSAGE", fmt.Sprintf("room=%d sender=%d status=%s at=%s %q",
			m.Room, m.Sender, m.Status, time.Unix(0, m.At).UTC().Format(time.RFC3339), content)
	case strings.HasPrefix(key, "msgid:"):
		return "INDEX", string(value)
	case strings.HasPrefix(key, "read:"):
		var m storedMarker
		if err := cbor.Unmarshal(value, &m); err != nil {
			return "MARKER", fmt.Sprintf("undecodable: %v", err)
		}
		return "MARKER", fmt.Sprintf("position=%s readAt=%s",
			m.Position, time.Unix(0, m.ReadAt).UTC().Format(time.RFC3339))
	case strings.HasPrefix(key, "unread:"):
		if len(value) != 8 {
			return "COUNTER", fmt.Sprintf("unexpected %d bytes", len(value))
		}
		return "COUNTER", fmt.Sprintf("unread=%d", binary.BigEndian.Uint64(value))
	case strings.HasPrefix(key, "req:"):
		return "TOKEN", "idempotency token"
	default:
		return "UNKNOWN", fmt.Sprintf("%d bytes", len(value))
	}
}
