package investing

import (
	"bytes"
	"context"
	"errors"
	"strconv"

	"investing-crawler/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Observation is one row of the historical series as delivered by the site
// table: date, price columns, volume and change. Numeric cells that fail to
// convert stay zero, the row itself is kept.
type Observation struct {
	Date      string
	Price     float64
	Open      float64
	High      float64
	Low       float64
	Volume    string
	ChangePct string
}

// Series is an ordered historical series, in the order delivered by the
// remote source. It is never deduplicated or re-sorted locally.
type Series []Observation

// FetchHistoricalPrices posts the query state to the historical data
// endpoint and parses the returned table. The result overwrites any series
// from a previous fetch. The date range must have been set first.
func (s *Session) FetchHistoricalPrices(ctx context.Context) (Series, error) {
	if s.startDate == "" {
		return nil, &StateError{What: "date range not set, call SetDateRange before fetching historical prices"}
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetHeaders(s.headers).
		SetFormData(map[string]string{
			"curr_id":      strconv.Itoa(s.instrument.CurrID),
			"smlID":        strconv.Itoa(s.instrument.SmlID),
			"header":       s.instrument.Header,
			"st_date":      s.startDate,
			"end_date":     s.endDate,
			"interval_sec": string(s.frequency),
			"sort_col":     s.instrument.SortCol,
			"sort_ord":     string(s.sortOrder),
			"action":       s.instrument.Action,
		}).
		Post(s.dataURL)
	if err != nil {
		return nil, &TransportError{URL: s.dataURL, Err: err}
	}
	if res.IsError() {
		return nil, &TransportError{URL: s.dataURL, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &ParseError{What: "failed to parse historical data response", Err: err}
	}

	// the response should hold exactly one table, only the first is read
	_, rows, err := htmlutil.FirstTable(doc)
	if errors.Is(err, htmlutil.ErrNoTable) {
		return nil, &ParseError{What: "no tabular data found in response"}
	}
	if err != nil {
		return nil, &ParseError{What: "failed to extract historical data table", Err: err}
	}

	series := make(Series, 0, len(rows))
	for _, cells := range rows {
		series = append(series, observationFromCells(cells))
	}

	s.series = series
	return series, nil
}

func observationFromCells(cells []string) Observation {
	var o Observation
	for i, cell := range cells {
		switch i {
		case 0:
			o.Date = cell
		case 1:
			o.Price, _ = ParsePrice(cell)
		case 2:
			o.Open, _ = ParsePrice(cell)
		case 3:
			o.High, _ = ParsePrice(cell)
		case 4:
			o.Low, _ = ParsePrice(cell)
		case 5:
			o.Volume = cell
		case 6:
			o.ChangePct = cell
		}
	}
	return o
}
