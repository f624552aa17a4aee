package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mcclellann/advanceLedger/pkg/ingest"
	"github.com/mcclellann/advanceLedger/pkg/interest"
	"github.com/mcclellann/advanceLedger/pkg/ledger"
	"github.com/mcclellann/advanceLedger/pkg/render"
	"github.com/mcclellann/advanceLedger/pkg/store"
)

const defaultDBFile = "db.sqlite3"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: advances [flags] <command> [args]

Commands:
  create-db            Initialize the sqlite3 database
  drop-db              Delete the sqlite3 database
  load <file.csv>      Load events from a csv file (kind,date,amount)
  balances [end-date]  Display balance statistics as of end-date (default today)

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	debug := flag.Bool("debug", false, "Debug output, or no debug output.")
	dbPath := flag.String("db", defaultDBFile, "Path to the sqlite3 database file.")
	flag.Usage = usage
	flag.Parse()

	if *debug {
		log.Println("[Debug mode is on]")
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "create-db":
		err = runCreateDB(*dbPath)
	case "drop-db":
		err = runDropDB(*dbPath)
	case "load":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		err = runLoad(*dbPath, args[1])
	case "balances":
		// "Now" is resolved here, once, at the outermost boundary.
		endDate := time.Now().UTC().Truncate(24 * time.Hour)
		if len(args) >= 2 {
			endDate, err = time.ParseInLocation(time.DateOnly, args[1], time.UTC)
			if err != nil {
				log.Fatalf("Invalid end date %q: expected YYYY-MM-DD", args[1])
			}
		}
		err = runBalances(*dbPath, endDate)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runCreateDB(dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Database already exists")
		return nil
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("unable to create sqlite3 database: %w", err)
	}
	defer s.Close()

	fmt.Printf("Initialized database at %s\n", dbPath)
	return nil
}

func runDropDB(dbPath string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("SQLite database does not exist at %s\n", dbPath)
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}
	fmt.Printf("Deleted SQLite database at %s\n", dbPath)
	return nil
}

func runLoad(dbPath, filename string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Printf("Database does not exist at %s, please create it using `create-db` command\n", dbPath)
		return nil
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	loaded, err := ingest.LoadFile(filename, s)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d events from %s\n", loaded, filename)
	return nil
}

func runBalances(dbPath string, endDate time.Time) error {
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.GetEventsThrough(endDate)
	if err != nil {
		return err
	}

	model := interest.NewSimpleDaily(interest.DefaultDailyRate)
	statement, err := ledger.ComputeStatement(model, events, endDate)
	if err != nil {
		return err
	}

	return render.Statement(os.Stdout, statement)
}
