package investing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const historicalFragment = `
<table>
	<tr>
		<th>Date</th><th>Price</th><th>Open</th><th>High</th><th>Low</th><th>Vol.</th><th>Change %</th>
	</tr>
	<tr>
		<td>Aug 29, 2025</td><td>675.50</td><td>670.00</td><td>680.25</td><td>668.75</td><td>12.50K</td><td>+0.82%</td>
	</tr>
	<tr>
		<td>Aug 28, 2025</td><td>670.00</td><td>665.25</td><td>672.00</td><td>1,664.50</td><td>10.10K</td><td>-0.35%</td>
	</tr>
	<tr>
		<td>Aug 27, 2025</td><td>672.25</td><td>674.00</td><td>676.50</td><td>670.00</td><td>9.80K</td><td>+0.12%</td>
	</tr>
</table>`

func historicalSession(t *testing.T, dataURL string) *Session {
	t.Helper()
	s, err := NewSession(Options{Instrument: LondonGasOil, DataURL: dataURL})
	require.NoError(t, err)
	require.NoError(t, s.SetDateRange("01/01/2017", ""))
	return s
}

func TestFetchHistoricalPrices(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		require.Equal(t, "www.investing.com", r.Host)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(historicalFragment))
	}))
	defer srv.Close()

	s := historicalSession(t, srv.URL)
	series, err := s.FetchHistoricalPrices(context.Background())
	require.NoError(t, err)

	require.Equal(t, "8861", gotForm["curr_id"])
	require.Equal(t, "300084", gotForm["smlID"])
	require.Equal(t, "London Gas Oil Futures", gotForm["header"])
	require.Equal(t, "01/01/2017", gotForm["st_date"])
	require.Equal(t, "Daily", gotForm["interval_sec"])
	require.Equal(t, "date", gotForm["sort_col"])
	require.Equal(t, "DESC", gotForm["sort_ord"])
	require.Equal(t, "historical_data", gotForm["action"])

	// rows come back in source order, untouched
	require.Len(t, series, 3)
	require.Equal(t, "Aug 29, 2025", series[0].Date)
	require.Equal(t, 675.50, series[0].Price)
	require.Equal(t, "12.50K", series[0].Volume)
	require.Equal(t, "+0.82%", series[0].ChangePct)
	require.Equal(t, 1664.50, series[1].Low)
	require.Equal(t, "Aug 27, 2025", series[2].Date)

	require.Equal(t, series, s.Series())
}

func TestFetchHistoricalPricesOverwritesPriorSeries(t *testing.T) {
	short := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if short {
			w.Write([]byte(`<table><tr><td>Aug 29, 2025</td><td>675.50</td></tr></table>`))
			return
		}
		w.Write([]byte(historicalFragment))
	}))
	defer srv.Close()

	s := historicalSession(t, srv.URL)
	_, err := s.FetchHistoricalPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Series(), 3)

	short = true
	_, err = s.FetchHistoricalPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, s.Series(), 1)
}

func TestFetchHistoricalPricesUsesFirstTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(historicalFragment + `
			<table><tr><td>bogus</td><td>1.00</td></tr></table>`))
	}))
	defer srv.Close()

	s := historicalSession(t, srv.URL)
	series, err := s.FetchHistoricalPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 3)
	require.Equal(t, "Aug 29, 2025", series[0].Date)
}

func TestFetchHistoricalPricesNoTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<div>temporarily unavailable</div>`))
	}))
	defer srv.Close()

	s := historicalSession(t, srv.URL)
	_, err := s.FetchHistoricalPrices(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Contains(t, err.Error(), "no tabular data found")
	require.Nil(t, s.Series())
}

func TestFetchHistoricalPricesTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := historicalSession(t, srv.URL)
	_, err := s.FetchHistoricalPrices(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestFetchHistoricalPricesRequiresDateRange(t *testing.T) {
	s, err := NewSession(Options{Instrument: LondonGasOil, DataURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = s.FetchHistoricalPrices(context.Background())
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}
