// cmd/seed/main.go
// Creates the tables and upserts the built-in roster into the database.
// Edits made in the table to horses that are not in the built-in roster are
// kept; built-in horses are reset to their stock stats.
//
// Usage:
//
//	DB_DRIVER=sqlite SQLITE_PATH=amidarace.db go run ./cmd/seed
//	go run ./cmd/seed -list
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/config"
	bundb "github.com/padraicbc/amidarace/db"
)

func main() {
	list := flag.Bool("list", false, "print the stored roster after seeding")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()
	log.Printf("connected to %s", cfg.DBDriver)

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	n, err := bundb.SeedRoster(ctx, db, catalog.Roster())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("roster seeded: %d rows", n)

	if !*list {
		return
	}
	horses, err := bundb.LoadRoster(ctx, db)
	if err != nil {
		log.Fatal(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSPD\tINT\tPOW\tSTA\tABILITY")
	for _, h := range horses {
		s := h.Stats
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			h.ID, h.Name, s.Speed, s.Intelligence, s.Power, s.Stamina, h.Ability)
	}
	_ = w.Flush()
}
