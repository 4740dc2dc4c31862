package investing

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const summaryRowLimit = 10

var seriesColumns = table.Row{"Date", "Price", "Open", "High", "Low", "Vol.", "Change %"}

// PrintSummary writes the query time, latest price and the first rows of the
// historical series (at most 10) to w.
func (s *Session) PrintSummary(w io.Writer) error {
	if s.series == nil {
		return &StateError{What: "no data to display, fetch historical prices first"}
	}

	fmt.Fprintf(
		w, "%s: The latest price of %s is %v\n",
		s.queryTime.Format("2006-01-02 15:04:05"),
		s.instrument.Name,
		s.latestPrice,
	)
	fmt.Fprintf(w, "The retrieved historical prices (top %d) are shown below:\n", summaryRowLimit)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(seriesColumns)
	for i, o := range s.series {
		if i == summaryRowLimit {
			break
		}
		t.AppendRow(table.Row{o.Date, o.Price, o.Open, o.High, o.Low, o.Volume, o.ChangePct})
	}
	t.Render()
	return nil
}
