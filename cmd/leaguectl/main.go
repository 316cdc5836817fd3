// leaguectl inspects and loads league data in the configured store without
// starting the web server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"shembeldon-league/internal/app"
	"shembeldon-league/internal/config"
	"shembeldon-league/internal/league"
	"shembeldon-league/internal/rules"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("usage: leaguectl [-config path] standings|schedule|unplayed|export|import <file>")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("leaguectl", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "path to config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	l, st, err := app.OpenLeague(ctx, cfg, time.Now())
	if err != nil {
		return err
	}
	defer st.Close()

	switch cmd := fs.Arg(0); cmd {
	case "standings":
		return printStandings(out, l)
	case "schedule":
		return printSchedule(out, l)
	case "unplayed":
		for _, f := range l.UnplayedFixtures() {
			fmt.Fprintln(out, fixtureLine(f.A, f.B, f.Date, f.Week))
		}
		return nil
	case "export":
		raw, err := l.Export()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(raw))
		return err
	case "import":
		if fs.NArg() < 2 {
			return errUsage
		}
		raw, err := os.ReadFile(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		if err := l.Import(raw); err != nil {
			return err
		}
		if l.Dirty() {
			return errors.New("import applied but could not be saved")
		}
		data := l.Snapshot()
		fmt.Fprintf(out, "imported %d players, %d fixtures, %d matches\n",
			len(data.Players), len(data.Fixtures), len(data.Matches))
		return nil
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func printStandings(out io.Writer, l *league.League) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tP\tW\tL\tSETS\tGAMES\tWIN%")
	for i, row := range l.Standings() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%.0f%%\n",
			i+1, row.Player, row.Played, row.Wins, row.Losses,
			rules.FormatDiff(row.SetDiff()), rules.FormatDiff(row.GameDiff()), row.WinPercent())
	}
	return tw.Flush()
}

func printSchedule(out io.Writer, l *league.League) error {
	for _, week := range l.Schedule() {
		fmt.Fprintln(out, week.Week)
		for _, f := range week.Fixtures {
			mark := " "
			if f.Played {
				mark = "x"
			}
			fmt.Fprintf(out, "  [%s] %s\n", mark, fixtureLine(f.A, f.B, f.Date, ""))
		}
	}
	return nil
}

func fixtureLine(a, b, date, week string) string {
	line := a + " vs " + b
	switch {
	case date != "":
		line += " (" + date + ")"
	case week != "":
		line += " (" + week + ")"
	}
	return line
}
