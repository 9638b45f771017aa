package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	require.Equal(t, "8080", AppConfig.AppPort)
	require.Equal(t, "development", AppConfig.Env)
	require.Equal(t, "memory", AppConfig.BookingStore)
	require.Equal(t, 9, AppConfig.WorkdayStartHour)
	require.Equal(t, 17, AppConfig.WorkdayEndHour)
	require.Equal(t, 60, AppConfig.SlotDurationMin)
	require.Equal(t, 10, AppConfig.CalendarTimeoutSec)
	require.False(t, IsProduction())
}

func TestLoadHostsFallsBackToDemoRoster(t *testing.T) {
	LoadConfig()

	hosts := LoadHosts()
	require.Len(t, hosts, 4)
	require.Equal(t, "Alice", hosts[0].Name)
	require.Equal(t, "alice@example.com", hosts[0].Email)

	seen := map[string]bool{}
	for _, h := range hosts {
		require.NotEmpty(t, h.ID)
		require.False(t, seen[h.ID], "host ids must be unique")
		seen[h.ID] = true
	}
}
