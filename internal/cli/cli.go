package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Facts     *FactsCommand
	Weekly    *WeeklyCommand
	Heatmap   *HeatmapCommand
	Top       *TopCommand
	Locations *LocationsCommand
	Report    *ReportCommand
	Import    *ImportCommand
	Status    *StatusCommand
	Prune     *PruneCommand
	Purge     *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "searchwrapped"
	parser.LongDescription = "Summary facts and chart data from a personal search history export."

	cmds := &commands{
		Facts:     &FactsCommand{globals: &globals},
		Weekly:    &WeeklyCommand{globals: &globals},
		Heatmap:   &HeatmapCommand{globals: &globals},
		Top:       &TopCommand{globals: &globals},
		Locations: &LocationsCommand{globals: &globals},
		Report:    &ReportCommand{globals: &globals},
		Import:    &ImportCommand{globals: &globals},
		Status:    &StatusCommand{globals: &globals, version: version},
		Prune:     &PruneCommand{globals: &globals},
		Purge:     &PurgeCommand{globals: &globals},
	}

	parser.AddCommand("facts", "Show basic facts", "Show the search count, busiest day, longest pause and longest search term.", cmds.Facts)
	parser.AddCommand("weekly", "Show searches per week", "Show the number of searches per Monday-start week.", cmds.Weekly)
	parser.AddCommand("heatmap", "Show searches per hour and weekday", "Show a 24 x 7 matrix of searches per local hour and weekday.", cmds.Heatmap)
	parser.AddCommand("top", "Show most searched terms", "Show the most frequent search terms.", cmds.Top)
	parser.AddCommand("locations", "Show search locations", "Show the coordinates searches were made from.", cmds.Locations)
	parser.AddCommand("report", "Show every aggregate", "Show all facts and aggregates, optionally exporting Prometheus gauges.", cmds.Report)
	parser.AddCommand("import", "Import an export into the archive", "Validate a search history export and store it in the local archive.", cmds.Import)
	parser.AddCommand("status", "Show archive statistics", "Show archive statistics and configuration summary.", cmds.Status)
	parser.AddCommand("prune", "Delete old archived records", "Delete archived records older than a relative age.", cmds.Prune)
	parser.AddCommand("purge", "Delete the whole archive", "Delete ALL archived data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("searchwrapped %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
