package cli

import (
	"fmt"

	"github.com/runnerr0/searchwrapped/internal/metrics"
)

// Execute implements the go-flags Commander interface for FactsCommand.
func (c *FactsCommand) Execute(args []string) error {
	a, _, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}

	facts := a.BasicFacts()
	if c.globals != nil && c.globals.JSON {
		return writeJSON(toFactsJSON(facts))
	}
	printFactsHuman(facts)
	return nil
}

// Execute implements the go-flags Commander interface for WeeklyCommand.
func (c *WeeklyCommand) Execute(args []string) error {
	a, _, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}

	weeks := a.SearchesPerWeek()
	if c.globals != nil && c.globals.JSON {
		return writeJSON(toWeeksJSON(weeks))
	}
	printWeeklyHuman(weeks)
	return nil
}

// Execute implements the go-flags Commander interface for HeatmapCommand.
func (c *HeatmapCommand) Execute(args []string) error {
	if _, err := c.fill(false); err != nil {
		return err
	}

	a, cfg, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}

	fill, err := c.fill(cfg.Analysis.FillHeatmap)
	if err != nil {
		return err
	}

	h := a.HourWeekdayHeatmap(fill)
	if c.globals != nil && c.globals.JSON {
		return writeJSON(toHeatmapJSON(h))
	}
	printHeatmapHuman(h)
	return nil
}

// Execute implements the go-flags Commander interface for TopCommand.
func (c *TopCommand) Execute(args []string) error {
	a, cfg, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}

	terms := a.TopTerms(topN(c.N, cfg.Analysis.TopTerms))
	if c.globals != nil && c.globals.JSON {
		return writeJSON(toTermsJSON(terms))
	}
	printTopHuman(terms)
	return nil
}

// Execute implements the go-flags Commander interface for LocationsCommand.
func (c *LocationsCommand) Execute(args []string) error {
	a, _, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}

	locs := a.ExtractLocations()
	if c.globals != nil && c.globals.JSON {
		return writeJSON(toLocationsJSON(locs))
	}
	printLocationsHuman(locs)
	return nil
}

// Execute implements the go-flags Commander interface for ReportCommand.
func (c *ReportCommand) Execute(args []string) error {
	if _, err := c.fill(false); err != nil {
		return err
	}

	a, cfg, err := c.analyze(c.globals, args)
	if err != nil {
		return err
	}
	logger := newLogger(c.globals, cfg)

	fill, err := c.fill(cfg.Analysis.FillHeatmap)
	if err != nil {
		return err
	}
	r := a.Report(topN(c.N, cfg.Analysis.TopTerms), fill)

	textfile := cfg.Metrics.Textfile
	if c.MetricsTextfile != "" {
		textfile = c.MetricsTextfile
	}
	if textfile != "" {
		if err := metrics.WriteTextfile(textfile, r); err != nil {
			return err
		}
		logger.Info().Str("path", textfile).Msg("metrics textfile written")
	}

	if c.globals != nil && c.globals.JSON {
		return writeJSON(reportJSON{
			Source:    r.Source,
			Language:  string(r.Language),
			Facts:     toFactsJSON(r.Facts),
			Weekly:    toWeeksJSON(r.Weekly),
			Heatmap:   toHeatmapJSON(r.Heatmap),
			TopTerms:  toTermsJSON(r.TopTerms),
			Locations: toLocationsJSON(r.Locations),
		})
	}

	fmt.Printf("Source: %s (%s)\n\n", r.Source, r.Language)
	printFactsHuman(r.Facts)
	fmt.Println()
	printWeeklyHuman(r.Weekly)
	fmt.Println()
	printHeatmapHuman(r.Heatmap)
	fmt.Println()
	printTopHuman(r.TopTerms)
	fmt.Println()
	printLocationsHuman(r.Locations)
	return nil
}
