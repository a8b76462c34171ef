package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/bitmark-inc/community-aid/schema"
)

func renderTable(out io.Writer, header []string, rows [][]string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// posted is the relative creation time when the server recorded one,
// otherwise the display date of the listing
func posted(l *schema.Listing) string {
	if !l.CreatedAt.IsZero() {
		return humanize.Time(l.CreatedAt)
	}
	return l.PostedDate
}
