package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity guards identifiers other packages and clients rely on.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"KeyringService", config.KeyringService},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"MetricNamespace", config.MetricNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestCalculationConstants(t *testing.T) {
	assert.Equal(t, 150, config.MaxAgeYears)
	assert.Equal(t, 2000, config.DefaultLeapYear, "fallback year must be a leap year so --02-29 parses")
	assert.Equal(t, 86400, config.HoursPerDay*config.MinutesPerHour*config.SecondsPerMin)
	assert.InDelta(t, 365.25, config.DaysPerYearApprox, 0)
	assert.InDelta(t, 1.2, config.HeartbeatsPerSec, 0)
}

func TestExitCodes_Distinct(t *testing.T) {
	codes := map[int]string{}
	for name, code := range map[string]int{
		"success": config.ExitCodeSuccess,
		"error":   config.ExitCodeError,
		"invalid": config.ExitCodeInvalid,
	} {
		_, dup := codes[code]
		assert.False(t, dup, "exit code %d reused by %s", code, name)
		codes[code] = name
	}
}

func TestValidationKinds_AreSnakeCase(t *testing.T) {
	for _, kind := range []string{config.KindMissingInput, config.KindFutureDate, config.KindTooOld} {
		assert.Equal(t, strings.ToLower(kind), kind)
		assert.NotContains(t, kind, " ")
	}
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Age/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.DefaultSyncInterval, time.Duration(config.DisabledSyncInterval))

	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(50*1024*1024), "MaxHTTPResponseSize should be at least 50MB for real-world usage")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
