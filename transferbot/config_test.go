package transferbot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "file-token"
dev_guilds = [100]

[data]
dir = "/var/lib/transferbot"

[game]
work_payout = 500
negotiation_category = "deals"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "file-token", cfg.Bot.Token)
	require.Equal(t, []snowflake.ID{100}, cfg.Bot.DevGuilds)
	require.Equal(t, "/var/lib/transferbot", cfg.Data.Dir)
	require.Equal(t, int64(500), cfg.Game.WorkPayout)
	require.Equal(t, "deals", cfg.Game.NegotiationGroup)

	// Unset knobs fall back to defaults.
	require.Equal(t, time.Hour, cfg.Game.WorkCooldown)
	require.Equal(t, 24*time.Hour, cfg.Game.NegotiationTTL)
	require.Equal(t, 5*time.Minute, cfg.Game.DedupWindow)
}

func TestLoadConfigEnvOverridesToken(t *testing.T) {
	path := writeConfig(t, `
[bot]
token = "file-token"
`)

	t.Setenv("TRANSFERBOT_TOKEN", "env-token")
	t.Setenv("TRANSFERBOT_DATA_DIR", "/tmp/override")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Bot.Token)
	require.Equal(t, "/tmp/override", cfg.Data.Dir)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
