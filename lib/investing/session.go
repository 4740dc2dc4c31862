package investing

import (
	"net/http/cookiejar"
	"time"

	"investing-crawler/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultDataURL is the endpoint historical prices are requested from.
const DefaultDataURL = "https://www.investing.com/instruments/HistoricalDataAjax"

type Options struct {
	Instrument Instrument
	// DataURL overrides the historical data endpoint, mainly so tests can
	// point the session at a mock server. Defaults to DefaultDataURL.
	DataURL string
	// Headers replaces DefaultHeaders entirely when non-nil.
	Headers map[string]string
	// Timeout applies to every request. Defaults to 30s.
	Timeout time.Duration
}

// Session owns the query state for one extraction run and exposes the two
// fetch operations plus presentation and export. It is not safe for
// concurrent use, the intended flow is strictly linear:
// configure, fetch, print, export.
type Session struct {
	http    *resty.Client
	dataURL string
	headers map[string]string

	instrument Instrument
	frequency  Frequency
	sortOrder  SortOrder
	startDate  string
	endDate    string

	queryTime   time.Time
	latestPrice float64
	series      Series
}

func NewSession(opts Options) (*Session, error) {
	httpClient := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)

	// investing.com sits behind Cloudflare and rejects bare clients
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	httpClient.SetTimeout(timeout)

	// 2 requests max per second, burst >= 2 so nothing gets dropped
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	restyutil.InstrumentClient(httpClient, "investing_session")

	headers := opts.Headers
	if headers == nil {
		headers = DefaultHeaders()
	}
	dataURL := opts.DataURL
	if dataURL == "" {
		dataURL = DefaultDataURL
	}

	return &Session{
		http:       httpClient,
		dataURL:    dataURL,
		headers:    headers,
		instrument: opts.Instrument,
		frequency:  FrequencyDaily,
		sortOrder:  SortDescending,
		queryTime:  time.Now(),
	}, nil
}

// SetHeaders replaces the header set used by subsequent requests wholesale.
func (s *Session) SetHeaders(headers map[string]string) {
	s.headers = headers
}

// SetInstrument replaces the whole query state with the supplied instrument.
func (s *Session) SetInstrument(inst Instrument) {
	s.instrument = inst
}

func (s *Session) SetFrequency(freq Frequency) error {
	switch freq {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		s.frequency = freq
		return nil
	}
	return &StateError{What: "invalid frequency " + string(freq) + ", must be Daily, Weekly or Monthly"}
}

func (s *Session) SetSortOrder(order SortOrder) error {
	switch order {
	case SortAscending, SortDescending:
		s.sortOrder = order
		return nil
	}
	return &StateError{What: "invalid sort order " + string(order) + ", must be ASC or DESC"}
}

// SetDateRange sets the period to scrape, both dates formatted MM/DD/YYYY.
// An empty end defaults to the current date, evaluated now, not when the
// session was created.
func (s *Session) SetDateRange(start, end string) error {
	if start == "" {
		return &StateError{What: "start date must not be empty"}
	}
	if end == "" {
		end = time.Now().Format("01/02/2006")
	}
	s.startDate = start
	s.endDate = end
	return nil
}

// QueryTime is the timestamp captured when the session was created. It names
// the export file and heads the printed summary.
func (s *Session) QueryTime() time.Time { return s.queryTime }

// LatestPrice returns the last successfully fetched live price, 0 before the
// first successful fetch. Failed fetches leave it untouched.
func (s *Session) LatestPrice() float64 { return s.latestPrice }

// Series returns the historical series from the last successful fetch, nil
// before the first one.
func (s *Session) Series() Series { return s.series }
