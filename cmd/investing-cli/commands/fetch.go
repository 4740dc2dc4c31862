package commands

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"investing-crawler/lib/configutil"
	"investing-crawler/lib/investing"
	"investing-crawler/lib/pricestore"
	"investing-crawler/lib/serviceutil"

	"github.com/spf13/cobra"
)

// Config tunes the session beyond what the flags cover. All fields are
// optional, the zero config fetches London Gas Oil with browser headers.
type Config struct {
	Instrument *investing.Instrument `json:"instrument"`
	Headers    map[string]string     `json:"headers"`
	DataURL    string                `json:"data_url"`
	TimeoutSec int                   `json:"timeout_seconds"`
}

var (
	fetchConfig    *string
	fetchStart     *string
	fetchEnd       *string
	fetchFrequency *string
	fetchSort      *string
	fetchOut       *string
	fetchDb        *string
	fetchNoExport  *bool
)

func init() {
	fetchConfig = fetchCmd.Flags().String("config", "config.json5", "The config file to read, if present.")
	fetchStart = fetchCmd.Flags().String("start", "01/01/2017", "Start of the date range, MM/DD/YYYY.")
	fetchEnd = fetchCmd.Flags().String("end", "", "End of the date range, MM/DD/YYYY. Defaults to today.")
	fetchFrequency = fetchCmd.Flags().String("frequency", "Daily", "Observation frequency: Daily, Weekly or Monthly.")
	fetchSort = fetchCmd.Flags().String("sort", "DESC", "Sort order of the returned series: ASC or DESC.")
	fetchOut = fetchCmd.Flags().String("out", ".", "Directory the CSV export is written to.")
	fetchDb = fetchCmd.Flags().String("db", "", "Also record the series to this sqlite database.")
	fetchNoExport = fetchCmd.Flags().Bool("no-export", false, "Skip the CSV export.")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--start MM/DD/YYYY] [--end MM/DD/YYYY]",
	Short: "Fetches the live price and historical series, prints a summary and exports a CSV.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := configutil.ReadConfig[Config](*fetchConfig)
		if err != nil && !os.IsNotExist(err) {
			serviceutil.Fatal("failed to read config", err)
		}

		instrument := investing.LondonGasOil
		if cfg.Instrument != nil {
			instrument = *cfg.Instrument
		}

		session, err := investing.NewSession(investing.Options{
			Instrument: instrument,
			DataURL:    cfg.DataURL,
			Headers:    cfg.Headers,
			Timeout:    time.Duration(cfg.TimeoutSec) * time.Second,
		})
		if err != nil {
			serviceutil.Fatal("failed to create session", err)
		}

		if err := session.SetFrequency(investing.Frequency(*fetchFrequency)); err != nil {
			serviceutil.Fatal("invalid --frequency", err)
		}
		if err := session.SetSortOrder(investing.SortOrder(*fetchSort)); err != nil {
			serviceutil.Fatal("invalid --sort", err)
		}
		if err := session.SetDateRange(*fetchStart, *fetchEnd); err != nil {
			serviceutil.Fatal("invalid date range", err)
		}

		// a dead live-price node is not fatal, the summary then shows the
		// last known value (0 on the first run)
		price, err := session.FetchLatestPrice(ctx)
		if err != nil {
			var parseErr *investing.ParseError
			if errors.As(err, &parseErr) {
				slog.Error("failed to parse the latest price", "err", err)
			} else {
				slog.Error("failed to fetch the latest price", "err", err)
			}
		} else {
			slog.Info("fetched latest price", "instrument", instrument.Name, "price", price)
		}

		series, err := session.FetchHistoricalPrices(ctx)
		if err != nil {
			serviceutil.Fatal("failed to fetch historical prices", err)
		}
		slog.Info("fetched historical prices", "rows", len(series))

		if err := session.PrintSummary(os.Stdout); err != nil {
			serviceutil.Fatal("failed to print summary", err)
		}

		if !*fetchNoExport {
			path, err := session.ExportCSV(*fetchOut)
			if err != nil {
				serviceutil.Fatal("failed to export csv", err)
			}
			slog.Info("exported csv", "file", path)
		}

		if *fetchDb != "" {
			store, err := pricestore.Open(*fetchDb)
			if err != nil {
				serviceutil.Fatal("failed to open price store", err)
			}
			defer store.Close()

			err = store.Record(ctx, instrument.Name, session.QueryTime(), series)
			if err != nil {
				serviceutil.Fatal("failed to record series", err)
			}
			slog.Info("recorded series", "db", *fetchDb)
		}
	},
}
