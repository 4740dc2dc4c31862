package investing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{"Date", "Price", "Open", "High", "Low", "Vol.", "Change %"}

// ExportCSV writes the full historical series to
// <instrumentName>_<YYYYMMDD_HHMMSS>.csv inside dir, header row included.
// An existing file of the same name is overwritten silently. Returns the
// path of the written file.
func (s *Session) ExportCSV(dir string) (string, error) {
	if s.series == nil {
		return "", &StateError{What: "no data to export, fetch historical prices first"}
	}

	name := fmt.Sprintf("%s_%s.csv", s.instrument.Name, s.queryTime.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write export header: %w", err)
	}
	for _, o := range s.series {
		err := w.Write([]string{
			o.Date,
			formatPrice(o.Price),
			formatPrice(o.Open),
			formatPrice(o.High),
			formatPrice(o.Low),
			o.Volume,
			o.ChangePct,
		})
		if err != nil {
			return "", fmt.Errorf("write export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export file: %w", err)
	}

	slog.Info("save completed", "file", path, "rows", len(s.series))
	return path, nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
