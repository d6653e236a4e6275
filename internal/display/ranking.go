package display

import (
	"fmt"
	"os"

	"github.com/backmassage/rankmaster/internal/report"
	"github.com/backmassage/rankmaster/internal/term"
)

// PrintRanking writes the ranked summary to stdout: one line per file with
// rank, name, total score, and last-modified timestamp, in report order.
// The top-ranked entry is highlighted when colors are enabled.
func PrintRanking(rows []report.Row) {
	if len(rows) == 0 {
		return
	}

	fmt.Fprintln(os.Stdout, "Quality Ranking:")
	for i, r := range rows {
		line := fmt.Sprintf("%2d. %s | Total Score: %d | Last Modified: %s",
			i+1, r.Name, r.Total, r.Modified.Format(report.TimeLayout))
		if i == 0 {
			fmt.Fprintln(os.Stdout, term.Green+line+term.NC)
			continue
		}
		fmt.Fprintln(os.Stdout, line)
	}
	fmt.Fprintln(os.Stdout)
}
