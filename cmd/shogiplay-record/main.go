package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hailam/shogiplay/internal/board"
	"github.com/hailam/shogiplay/internal/diagram"
	"github.com/hailam/shogiplay/internal/storage"
)

const usage = `usage: shogiplay-record [-db dir] <command> [args]

commands:
  save [-sfen s] <moves...>   store a game and print its id
  list                        list stored games
  show <id>                   replay a game and print the final position
  kif <id> [encoding]         write a game as KIF
  delete <id>                 remove a game
  stats                       print game statistics
`

func main() {
	dbDir := flag.String("db", "", "database directory (default: "+storage.DataDirEnv+" or the user data directory)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Fatal("could not open database: ", err)
	}

	err = run(store, args[0], args[1:])
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(store *storage.Storage, cmd string, args []string) error {
	switch cmd {
	case "save":
		fs := flag.NewFlagSet("save", flag.ExitOnError)
		sfen := fs.String("sfen", board.StartSFEN, "starting position")
		fs.Parse(args)

		line := "position sfen " + *sfen
		if fs.NArg() > 0 {
			line += " moves " + strings.Join(fs.Args(), " ")
		}
		pos := board.NewPosition()
		if err := pos.PushUSIPositionCmd(line); err != nil {
			return err
		}
		rec := storage.NewRecord(pos)
		if err := store.Save(rec); err != nil {
			return err
		}
		fmt.Println(rec.ID)

	case "list":
		records, err := store.List()
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%s  %s  %3d moves  %s\n",
				rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), len(rec.Moves), rec.Result)
		}

	case "show":
		if len(args) != 1 {
			return fmt.Errorf("show needs a game id")
		}
		pos, err := store.Replay(args[0])
		if err != nil {
			return err
		}
		fmt.Print(pos)
		fmt.Println("sfen", pos.SFEN())
		fmt.Println("status", pos.Status())

	case "kif":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("kif needs a game id and an optional encoding")
		}
		enc := diagram.UTF8
		if len(args) == 2 {
			var err error
			if enc, err = diagram.ParseEncoding(args[1]); err != nil {
				return err
			}
		}
		pos, err := store.Replay(args[0])
		if err != nil {
			return err
		}
		return diagram.WriteKIF(os.Stdout, pos, enc)

	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("delete needs a game id")
		}
		return store.Delete(args[0])

	case "stats":
		stats, err := store.LoadStats()
		if err != nil {
			return err
		}
		fmt.Printf("games %d, moves %d\n", stats.Games, stats.TotalMoves)
		for result, n := range stats.ByResult {
			fmt.Printf("  %-20s %d\n", result, n)
		}
		for winner, n := range stats.ByWinner {
			fmt.Printf("  %s wins %d\n", winner, n)
		}

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}
