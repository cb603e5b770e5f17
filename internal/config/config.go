package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the taskdeck server.
type Config struct {
	// Listen is the address the taskdeck server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// SessionKey is the key used to sign session cookies. When empty, a
	// random key is generated at startup and sessions won't survive a
	// restart.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// Seed holds the startup dataset. When empty, built-in demo data is
	// loaded instead.
	Seed *SeedConfig `yaml:"seed" mapstructure:"seed"`
}

// SeedConfig holds the users, teams and tasks loaded into the store at
// startup. The store is in-memory only, so this is the entire dataset.
type SeedConfig struct {
	Users []SeedUser `yaml:"users" mapstructure:"users"`
	Teams []SeedTeam `yaml:"teams" mapstructure:"teams"`
	Tasks []SeedTask `yaml:"tasks" mapstructure:"tasks"`
}

// SeedUser is a user account definition. The password is hashed before
// it is stored; it never leaves the seed layer in plain text.
type SeedUser struct {
	ID       uint   `yaml:"id" mapstructure:"id"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	IsAdmin  bool   `yaml:"is_admin" mapstructure:"is_admin"`
	// Color is a display color for the user, e.g. "#7c3aed".
	Color string `yaml:"color" mapstructure:"color"`
}

// SeedTeam is a team definition. LeaderID references a seed user by id
// and is not checked.
type SeedTeam struct {
	ID       uint   `yaml:"id" mapstructure:"id"`
	Name     string `yaml:"name" mapstructure:"name"`
	LeaderID uint   `yaml:"leader_id" mapstructure:"leader_id"`
}

// SeedTask is a task definition. AssigneeID references a seed user by
// id and is not checked; Progress is not range-validated.
type SeedTask struct {
	ID         uint   `yaml:"id" mapstructure:"id"`
	Title      string `yaml:"title" mapstructure:"title"`
	Status     string `yaml:"status" mapstructure:"status"`
	AssigneeID uint   `yaml:"assignee_id" mapstructure:"assignee_id"`
	Progress   int    `yaml:"progress" mapstructure:"progress"`
}

// Load reads the configuration from the specified path and returns a
// Config struct. If path is empty, it searches the default locations.
// A missing config file is fine: defaults plus environment variables
// (TASKDECK_ prefix) are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.taskdeck")
		v.AddConfigPath("/etc/taskdeck")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3200")
	v.SetDefault("session_key", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
}

func sanitizeConfig(c *Config) {
	c.Listen = strings.TrimSpace(c.Listen)
	c.SessionKey = strings.TrimSpace(c.SessionKey)
}

func validateConfig(c *Config) error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive, got %d", c.SessionMaxAge)
	}
	if c.Seed != nil {
		for _, u := range c.Seed.Users {
			if strings.TrimSpace(u.Username) == "" {
				return fmt.Errorf("seed user %d has an empty username", u.ID)
			}
			if u.Password == "" {
				return fmt.Errorf("seed user %q has an empty password", u.Username)
			}
		}
	}
	return nil
}
