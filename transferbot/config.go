package transferbot

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/futbolrp/transferbot/transferbot/config"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	// Secrets may come from the environment instead of the file
	// (TRANSFERBOT_TOKEN beats bot.token).
	var env EnvOverrides
	if err = envconfig.Process("transferbot", &env); err != nil {
		return nil, fmt.Errorf("failed to read env overrides: %w", err)
	}
	if env.Token != "" {
		cfg.Bot.Token = env.Token
	}
	if env.DataDir != "" {
		cfg.Data.Dir = env.DataDir
	}

	cfg.Game.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Bot  BotConfig  `toml:"bot"`
	Data DataConfig `toml:"data"`
	Game GameConfig `toml:"game"`
}

type EnvOverrides struct {
	Token   string `envconfig:"TOKEN"`
	DataDir string `envconfig:"DATA_DIR"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

// GameConfig tunes the transfer-game mechanics. Zero values fall back
// to the defaults the community runs with.
type GameConfig struct {
	WorkPayout       int64         `toml:"work_payout"`
	WorkCooldown     time.Duration `toml:"work_cooldown"`
	CommandCooldown  time.Duration `toml:"command_cooldown"`
	NegotiationTTL   time.Duration `toml:"negotiation_ttl"`
	TeardownGrace    time.Duration `toml:"teardown_grace"`
	DedupWindow      time.Duration `toml:"dedup_window"`
	NegotiationGroup string        `toml:"negotiation_category"`
}

func (c *GameConfig) applyDefaults() {
	if c.WorkPayout == 0 {
		c.WorkPayout = config.WorkPayout
	}
	if c.WorkCooldown == 0 {
		c.WorkCooldown = config.WorkCooldown
	}
	if c.CommandCooldown == 0 {
		c.CommandCooldown = config.CommandCooldown
	}
	if c.NegotiationTTL == 0 {
		c.NegotiationTTL = config.NegotiationTTL
	}
	if c.TeardownGrace == 0 {
		c.TeardownGrace = config.TeardownGrace
	}
	if c.DedupWindow == 0 {
		c.DedupWindow = config.DedupWindow
	}
	if c.NegotiationGroup == "" {
		c.NegotiationGroup = "negotiations"
	}
}
