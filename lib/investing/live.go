package investing

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchLatestPrice scrapes the instrument's display page for the current
// price. On success the value is also retained on the session, a failed
// fetch of any kind leaves the previously fetched value in place, so the
// caller may log the error and keep going with stale data.
func (s *Session) FetchLatestPrice(ctx context.Context) (float64, error) {
	if s.instrument.URL == "" {
		return s.latestPrice, &StateError{What: "instrument has no display page url"}
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetHeaders(s.headers).
		Get(s.instrument.URL)
	if err != nil {
		return s.latestPrice, &TransportError{URL: s.instrument.URL, Err: err}
	}
	if res.IsError() {
		return s.latestPrice, &TransportError{URL: s.instrument.URL, StatusCode: res.StatusCode()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return s.latestPrice, &ParseError{What: "failed to parse price page", Err: err}
	}

	// the page marks the live price node with id="last_last", duplicates
	// have been observed so only the first match counts
	node := doc.Find(`[id="last_last"]`).First()
	if node.Length() == 0 {
		return s.latestPrice, &ParseError{What: "failed to parse price: no last_last node in page"}
	}

	price, err := ParsePrice(node.Text())
	if err != nil {
		return s.latestPrice, &ParseError{What: "failed to parse price", Err: err}
	}

	s.latestPrice = price
	return price, nil
}

// ParsePrice converts a displayed price to a float. Prices of a thousand and
// above carry comma separators which are stripped before conversion.
func ParsePrice(text string) (float64, error) {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", "")
	return strconv.ParseFloat(text, 64)
}
