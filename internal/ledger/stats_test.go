package ledger

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		successful int64
		total      int64
		want       float64
	}{
		{name: "No Attempts", successful: 0, total: 0, want: 0},
		{name: "All Successful", successful: 4, total: 4, want: 100},
		{name: "None Successful", successful: 0, total: 7, want: 0},
		{name: "Two Thirds", successful: 2, total: 3, want: 66.67},
		{name: "One Third", successful: 1, total: 3, want: 33.33},
		{name: "Half", successful: 1, total: 2, want: 50},
		{name: "One Seventh", successful: 1, total: 7, want: 14.29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SuccessRate(tt.successful, tt.total))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	got := StartOfDay(time.Date(2024, 1, 31, 23, 59, 59, 999, loc))
	require.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, loc), got)
	require.Equal(t, loc, got.Location())
}

func TestHeaderGeo(t *testing.T) {
	g := NewHeaderGeo()

	r := httptest.NewRequest("GET", "/", nil)
	require.Empty(t, g.Country(r, "1.1.1.1"))

	r.Header.Set("CF-IPCountry", "XX")
	require.Empty(t, g.Country(r, "1.1.1.1"))

	r.Header.Set("X-Country-Code", "se")
	require.Equal(t, "SE", g.Country(r, "1.1.1.1"))

	r.Header.Set("CF-IPCountry", "FI")
	require.Equal(t, "FI", g.Country(r, "1.1.1.1"))

	require.Empty(t, NoopGeo{}.Country(r, "1.1.1.1"))
	require.Empty(t, g.Country(nil, ""))
}
