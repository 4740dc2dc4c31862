package investing

// Instrument describes one tradable commodity tracked by investing.com.
// CurrID and SmlID are site-internal ids, they can be found by inspecting
// the html elements of the instrument's historical-data page.
type Instrument struct {
	Name    string `json:"name"`
	CurrID  int    `json:"curr_id"`
	SmlID   int    `json:"sml_id"`
	Header  string `json:"header"`
	SortCol string `json:"sort_col"`
	Action  string `json:"action"`
	URL     string `json:"url"`
}

// LondonGasOil is the instrument the extractor was originally built around.
var LondonGasOil = Instrument{
	Name:    "CFD",
	CurrID:  8861,
	SmlID:   300084,
	Header:  "London Gas Oil Futures",
	SortCol: "date",
	Action:  "historical_data",
	URL:     "https://www.investing.com/commodities/london-gas-oil-historical-data",
}

var BrentOil = Instrument{
	Name:    "BrentOil",
	CurrID:  8833,
	SmlID:   300028,
	Header:  "Brent Oil Futures",
	SortCol: "date",
	Action:  "historical_data",
	URL:     "https://www.investing.com/commodities/brent-oil-historical-data",
}

var Gold = Instrument{
	Name:    "Gold",
	CurrID:  8830,
	SmlID:   300004,
	Header:  "Gold Futures",
	SortCol: "date",
	Action:  "historical_data",
	URL:     "https://www.investing.com/commodities/gold-historical-data",
}

// Catalog lists the instruments known out of the box. Anything else can be
// supplied through the config file.
var Catalog = []Instrument{LondonGasOil, BrentOil, Gold}

// DefaultHeaders returns the headers presented on every outbound request.
// The X-Requested-With marker is required by the historical data endpoint,
// which only answers requests that look ajax-originated, and the Host
// header must name the target site (resty promotes it onto the request).
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":       "Mozilla/5.0",
		"Referer":          "https://www.investing.com",
		"Host":             "www.investing.com",
		"X-Requested-With": "XMLHttpRequest",
	}
}

type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

type SortOrder string

const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)
