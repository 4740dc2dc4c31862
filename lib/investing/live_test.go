package investing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const livePage = `<html><body>
<div class="top">
	<span id="last_last">1,234.56</span>
	<span id="last_last">9,999.99</span>
</div>
</body></html>`

func liveSession(t *testing.T, url string) *Session {
	t.Helper()
	s, err := NewSession(Options{Instrument: Instrument{Name: "CFD", URL: url}})
	require.NoError(t, err)
	return s
}

func TestFetchLatestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(livePage))
	}))
	defer srv.Close()

	s := liveSession(t, srv.URL)
	price, err := s.FetchLatestPrice(context.Background())
	require.NoError(t, err)
	// first matching node wins, comma separator stripped
	require.Equal(t, 1234.56, price)
	require.Equal(t, 1234.56, s.LatestPrice())
}

func TestFetchLatestPriceKeepsValueOnFailure(t *testing.T) {
	failing := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(livePage))
	}))
	defer srv.Close()

	s := liveSession(t, srv.URL)
	_, err := s.FetchLatestPrice(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1234.56, s.LatestPrice())

	failing = true
	_, err = s.FetchLatestPrice(context.Background())
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	require.Equal(t, 1234.56, s.LatestPrice())
}

func TestFetchLatestPriceNoMarkerNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><span id="other">42.0</span></body></html>`))
	}))
	defer srv.Close()

	s := liveSession(t, srv.URL)
	_, err := s.FetchLatestPrice(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, float64(0), s.LatestPrice())
}

func TestFetchLatestPriceBadNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><span id="last_last">n/a</span></body></html>`))
	}))
	defer srv.Close()

	s := liveSession(t, srv.URL)
	_, err := s.FetchLatestPrice(context.Background())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, float64(0), s.LatestPrice())
}

func TestFetchLatestPriceUnreachable(t *testing.T) {
	s := liveSession(t, "http://127.0.0.1:1")
	_, err := s.FetchLatestPrice(context.Background())
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestFetchLatestPriceNoURL(t *testing.T) {
	s, err := NewSession(Options{Instrument: Instrument{Name: "CFD"}})
	require.NoError(t, err)

	_, err = s.FetchLatestPrice(context.Background())
	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
}
