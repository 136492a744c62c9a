package bittrex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeParsesExchangeFormat(t *testing.T) {
	// The exchange sends timestamps without a timezone suffix.
	var m Market
	require.NoError(t, json.Unmarshal([]byte(`{"MarketName":"BTC-LTC","Created":"2014-07-09T07:19:30.15"}`), &m))
	assert.Equal(t, 2014, m.Created.Year())
	assert.Equal(t, time.July, m.Created.Month())
	assert.Equal(t, 150*time.Millisecond, time.Duration(m.Created.Nanosecond()))
}

func TestTimeParsesRFC3339(t *testing.T) {
	var ts Time
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2014-07-09T07:19:30Z"`)))
	assert.Equal(t, 9, ts.Day())
}

func TestTimeNullIsZero(t *testing.T) {
	var ts Time
	require.NoError(t, ts.UnmarshalJSON([]byte(`null`)))
	assert.True(t, ts.IsZero())
}

func TestTimeRejectsGarbage(t *testing.T) {
	var ts Time
	assert.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}

func TestMarketNameCurrencySplit(t *testing.T) {
	assert.Equal(t, "LTC", TargetCurrency("BTC-LTC"))
	assert.Equal(t, "BTC", QuoteCurrency("BTC-LTC"))

	// Degenerate names fall back to the whole string.
	assert.Equal(t, "LTC", TargetCurrency("LTC"))
	assert.Equal(t, "LTC", QuoteCurrency("LTC"))
}
