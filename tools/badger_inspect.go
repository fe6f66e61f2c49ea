package main

import (
	"flag"
	"fmt"
	"log"
	"nearby-chat/repositories"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// Dumps the transcripts kept by nearby-chat as a table.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	session := flag.String("session", "", "Only show one session (local peer id)")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Session", "Time", "Direction", "Sender", "Text"})
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

	prefix := []byte("msg:")
	if *session != "" {
		prefix = []byte(fmt.Sprintf("msg:%s:", *session))
	}

	count := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(v []byte) error {
				message, err := repositories.DecodeEntry(item.KeyCopy(nil), v)
				if err != nil {
					// Keep going, one bad entry should not hide the rest
					fmt.Printf("Error decoding key %s: %v\n", string(item.Key()), err)
					return nil
				}
				direction := "in"
				if message.Local {
					direction = "out"
				}
				// First 8 characters of the session id are enough to tell them apart
				displayID := message.Session
				if len(displayID) > 8 {
					displayID = displayID[:8]
				}
				table.Append([]string{
					displayID,
					message.At.Format("2006-01-02 15:04:05"),
					direction,
					message.Sender,
					message.Text,
				})
				count++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("%d message(s)\n", count)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err == nil {
		return db, nil
	}
	if !strings.Contains(err.Error(), "Log truncate required") {
		return nil, err
	}
	// The process holding the transcript was killed: open once for writing so
	// badger can truncate the value log, then reopen read-only.
	fmt.Println("⚠️  Transcript was not closed properly, repairing")
	repairOpts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithBypassLockGuard(true)
	db, err = badger.Open(repairOpts)
	if err != nil {
		return nil, fmt.Errorf("repair failed: %w", err)
	}
	db.Close()
	return badger.Open(opts)
}
