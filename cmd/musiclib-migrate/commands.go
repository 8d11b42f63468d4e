package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"musiclib/internal/store"
)

func copyCommand() *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "copy every table from the sqlite file into mysql",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "source sqlite file (defaults to SQLITE_PATH)",
			},
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "skip writing <sqlite>.backup before copying",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := loadedConfig(c)
			opts := cfg.StoreOptions()
			if opts.MySQL == nil {
				return errors.New("copy needs a mysql target: set MYSQL_HOST or DATABASE_URL")
			}
			path := c.String("sqlite")
			if path == "" {
				path = opts.SQLitePath
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("source sqlite file: %w", err)
			}

			if !c.Bool("no-backup") {
				backup := path + ".backup"
				if err := copyFile(path, backup); err != nil {
					return fmt.Errorf("backup sqlite file: %w", err)
				}
				log.Info().Str("backup", backup).Msg("sqlite file backed up")
			}

			src, err := store.OpenSQLite(c.Context, path)
			if err != nil {
				return err
			}
			defer src.Close()

			dst, err := store.OpenMySQL(c.Context, *opts.MySQL)
			if err != nil {
				return err
			}
			defer dst.Close()

			stats, err := store.Copy(c.Context, src, dst)
			if err != nil {
				return err
			}
			log.Info().Interface("copied", stats).Msg("copy complete")
			return printCopyStats(c.App.Writer, stats)
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "print row counts per table",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "engine",
				Usage: "sqlite or mysql",
				Value: string(store.EngineSQLite),
			},
		},
		Action: func(c *cli.Context) error {
			opts := loadedConfig(c).StoreOptions()

			var (
				db  *store.DB
				err error
			)
			switch store.Engine(c.String("engine")) {
			case store.EngineSQLite:
				db, err = store.OpenSQLite(c.Context, opts.SQLitePath)
			case store.EngineMySQL:
				if opts.MySQL == nil {
					return errors.New("stats --engine mysql needs MYSQL_HOST or DATABASE_URL")
				}
				db, err = store.OpenMySQL(c.Context, *opts.MySQL)
			default:
				return fmt.Errorf("unknown engine %q", c.String("engine"))
			}
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := db.TableCounts(c.Context)
			if err != nil {
				return err
			}
			return printTableCounts(c.App.Writer, db.Engine(), counts)
		},
	}
}

func printCopyStats(w io.Writer, stats store.CopyStats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tCOPIED")
	fmt.Fprintf(tw, "playlists\t%d\n", stats.Playlists)
	fmt.Fprintf(tw, "playlist_songs\t%d\n", stats.PlaylistSongs)
	fmt.Fprintf(tw, "favorites\t%d\n", stats.Favorites)
	fmt.Fprintf(tw, "listen_history\t%d\n", stats.ListenHistory)
	fmt.Fprintf(tw, "ratings\t%d\n", stats.Ratings)
	fmt.Fprintf(tw, "liked_songs\t%d\n", stats.LikedSongs)
	return tw.Flush()
}

func printTableCounts(w io.Writer, engine store.Engine, counts []store.TableCount) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TABLE (%s)\tROWS\n", engine)
	for _, tc := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", tc.Table, tc.Rows)
	}
	return tw.Flush()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
