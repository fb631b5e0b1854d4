package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/model"
	"github.com/pable/go-rugby-metrics/internal/playback"
	"github.com/pable/go-rugby-metrics/internal/report"
	"github.com/pable/go-rugby-metrics/internal/storage"
	"github.com/pable/go-rugby-metrics/internal/team"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cActive   = color.New(color.FgGreen)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a session against the match cache, toggle descriptor filters and browse charts, events and clips. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	shellCmd.Flags().StringSliceVar(&ourTeamFlags, "our-team", nil, "team label(s) to treat as ours (default: most active team)")
	shellCmd.Flags().BoolVar(&extraTime, "extra-time", false, "report events past 80' in their own bucket")
}

// shellSession is the REPL state: the loaded match, the active filter set and
// the playback cursor over the filtered events.
type shellSession struct {
	db    *storage.DB
	match *matchView
	set   filter.Set
	pl    playback.Playlist
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s := &shellSession{db: db}

	cGreeting.Println("rugbymetrics shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("rugbymetrics")
		if s.match != nil {
			cMuted.Printf("[%s]", shortHash(s.match.Summary.Hash))
		}
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "list":
			s.list()
		case "use":
			if rest == "" {
				cError.Fprintln(os.Stderr, "usage: use <hash-prefix>")
				continue
			}
			s.use(rest)
		default:
			if s.match == nil {
				cWarn.Fprintf(os.Stderr, "unknown command or no match loaded: %q (try 'use <hash-prefix>' or 'help')\n", cmd)
				continue
			}
			s.dispatch(cmd, rest)
		}
	}
	return nil
}

// dispatch runs the commands that need a loaded match.
func (s *shellSession) dispatch(cmd, rest string) {
	switch cmd {
	case "filter", "f":
		if rest == "" {
			s.printFilters()
			return
		}
		d, err := filter.Parse(rest)
		if err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		s.setFilters(s.set.Toggle(d))
	case "unfilter":
		if rest == "" {
			cError.Fprintln(os.Stderr, "usage: unfilter <descriptor>")
			return
		}
		s.setFilters(s.set.Without(rest))
	case "clear":
		s.setFilters(nil)
	case "show":
		printCharts(os.Stdout, s.match, s.set, rest)
	case "events":
		report.PrintEvents(os.Stdout, s.filtered(), s.match.Ctx)
	case "teams":
		report.PrintTeams(os.Stdout, team.Counts(s.match.Events), s.match.Ctx.OurTeams)
	case "descriptors":
		for _, name := range filter.Catalog(s.match.Events) {
			fmt.Printf("  %-24s %s\n", name, cMuted.Sprint(filter.KindOf(name)))
		}
	case "values":
		if rest == "" {
			cError.Fprintln(os.Stderr, "usage: values <descriptor>")
			return
		}
		vals := filter.Values(s.match.Events, rest, s.match.Ctx)
		if len(vals) == 0 {
			cMuted.Println("(no values)")
			return
		}
		for _, v := range vals {
			marker := "  "
			if s.set.Has(model.FilterDescriptor{Descriptor: rest, Value: v}) {
				marker = cActive.Sprint("* ")
			}
			fmt.Printf("%s%s\n", marker, v)
		}
	case "clips":
		report.PrintClips(os.Stdout, s.pl.Clips())
	case "play":
		s.move(s.pl.Start())
	case "next", "n":
		s.move(s.pl.Next())
	case "prev", "p":
		s.move(s.pl.Prev())
	case "seek":
		s.move(s.pl.Seek(rest))
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q: type 'help'\n", cmd)
	}
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored matches"},
		{"use <hash-prefix>", "load a match and reset the filters"},
		{"filter <KEY=VALUE>", "toggle a descriptor filter (all must match)"},
		{"filter", "show the active filters"},
		{"unfilter <KEY>", "remove every filter on a descriptor"},
		{"clear", "remove all filters"},
		{"show [chart]", "print the charts, optionally only matching titles"},
		{"events", "list the filtered events"},
		{"teams", "team labels by volume"},
		{"descriptors", "descriptor names present in the match"},
		{"values <KEY>", "values a descriptor takes (* = active)"},
		{"clips", "video clips of the filtered events"},
		{"play / next / prev", "walk the clips"},
		{"seek <event-id>", "jump to an event's clip"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-24s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func (s *shellSession) list() {
	matches, err := s.db.ListMatches()
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		cMuted.Println("No matches stored yet.")
		return
	}
	report.PrintMatchList(os.Stdout, matches)
}

func (s *shellSession) use(prefix string) {
	m, err := loadMatch(s.db, prefix)
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	s.match = m
	report.PrintMatchSummary(os.Stdout, m.Summary)
	s.setFilters(nil)
}

func (s *shellSession) filtered() []model.Event {
	return filter.Apply(s.match.Events, s.set, s.match.Ctx)
}

// setFilters replaces the active set and rebuilds the playlist.
func (s *shellSession) setFilters(set filter.Set) {
	s.set = set
	events := s.filtered()
	s.pl = playback.New(events, playback.DefaultClipSec)
	s.printFilters()
	cMuted.Printf("%d of %d events, %d clips\n", len(events), len(s.match.Events), s.pl.Len())
}

func (s *shellSession) printFilters() {
	cHeader.Print("filters: ")
	if len(s.set) == 0 {
		fmt.Println(s.set)
		return
	}
	cActive.Println(s.set)
}

func (s *shellSession) move(pl playback.Playlist, c model.Clip, ok bool) {
	if !ok {
		cMuted.Println("(no clip)")
		return
	}
	s.pl = pl
	fmt.Printf("%s  %-12s  event %s  start %s (%.1fs)  duration %.1fs\n",
		cActive.Sprint("▶"), c.EventType, c.EventID, report.FormatClock(c.StartSec), c.StartSec, c.DurationSec)
}
