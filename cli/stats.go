package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bitmark-inc/community-aid/filter"
	"github.com/bitmark-inc/community-aid/schema"
)

// summary is the overview of the admin dashboard
type summary struct {
	Donations     int
	Requests      int
	HighUrgency   int
	PerCategory   map[string][2]int
	SampleDisplay bool
}

func summarize(donations []schema.Donation, requests []schema.Request) summary {
	high := filter.Apply[schema.Request](requests, filter.Criteria{Urgency: string(schema.UrgencyHigh)})

	donationCounts := filter.Count[schema.Donation](donations)
	requestCounts := filter.Count[schema.Request](requests)

	s := summary{
		Donations:   len(donations),
		Requests:    len(requests),
		HighUrgency: len(high),
		PerCategory: map[string][2]int{},
	}
	for _, category := range schema.Categories {
		s.PerCategory[category] = [2]int{donationCounts[category], requestCounts[category]}
	}
	return s
}

func newStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show listing counts, admins only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAdmin(); err != nil {
				return err
			}

			if err := app.donations.Load(cmd.Context()); err != nil {
				return err
			}
			if err := app.requests.Load(cmd.Context()); err != nil {
				return err
			}

			s := summarize(app.donations.Items(), app.requests.Items())
			s.SampleDisplay = app.donations.IsSample() || app.requests.IsSample()

			fmt.Fprintf(app.out, "Donations: %s\n", humanize.Comma(int64(s.Donations)))
			fmt.Fprintf(app.out, "Requests: %s (%s high urgency)\n",
				humanize.Comma(int64(s.Requests)), humanize.Comma(int64(s.HighUrgency)))

			rows := make([][]string, 0, len(schema.Categories))
			for _, category := range schema.Categories {
				counts := s.PerCategory[category]
				rows = append(rows, []string{category, fmt.Sprint(counts[0]), fmt.Sprint(counts[1])})
			}
			renderTable(app.out, []string{"CATEGORY", "DONATIONS", "REQUESTS"}, rows)

			if s.SampleDisplay {
				fmt.Fprintln(app.out, "(sample data, the server is not reachable)")
			}
			return nil
		},
	}
}
