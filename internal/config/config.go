package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Glovo    GlovoConfig    `yaml:"glovo"`
	Insights InsightsConfig `yaml:"insights"`
	Shift    ShiftConfig    `yaml:"shift"`
	Staff    []StaffEntry   `yaml:"staff"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type GlovoConfig struct {
	APIURL    string `yaml:"api_url"`
	AuthToken string `yaml:"auth_token"`
}

type InsightsConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	MenuURL  string `yaml:"menu_url"`
}

type ShiftConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

type StaffEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
	PIN  string `yaml:"pin"`
}

// Load reads the YAML config file and fills in defaults for anything omitted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Staff) == 0 {
		cfg.Staff = defaultRoster
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP:     HTTPConfig{Port: 3000},
		Database: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Database: "mani24"},
		RabbitMQ: RabbitMQConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Glovo:    GlovoConfig{APIURL: "https://stageapi.glovoapp.com"},
		Shift:    ShiftConfig{Start: 8, End: 22},
	}
}

// defaultRoster mirrors the embedded staff table used when no roster is
// configured.
var defaultRoster = []StaffEntry{
	{ID: "u1", Name: "Enock", Role: "FRONT_DESK", PIN: "1001"},
	{ID: "u2", Name: "David", Role: "FRONT_DESK", PIN: "1002"},
	{ID: "u3", Name: "Judith", Role: "FRONT_DESK", PIN: "1003"},
	{ID: "u4", Name: "Yvonne", Role: "FRONT_DESK", PIN: "1004"},
	{ID: "u5", Name: "Paul", Role: "CHEF", PIN: "2001"},
	{ID: "u6", Name: "Ken M", Role: "CHEF", PIN: "2002"},
	{ID: "u7", Name: "Ken N", Role: "CHEF", PIN: "2003"},
	{ID: "u8", Name: "Samuel", Role: "PACKER", PIN: "3001"},
	{ID: "u9", Name: "Nicholus", Role: "PACKER", PIN: "3002"},
	{ID: "u10", Name: "Benard", Role: "PACKER", PIN: "3003"},
	{ID: "u11", Name: "Manager Kemi", Role: "ADMIN", PIN: "9001"},
}

// Roster converts the configured staff entries to the domain roster, skipping
// entries with an unknown role.
func (c *Config) Roster() domain.Roster {
	roster := make(domain.Roster, 0, len(c.Staff))
	for _, e := range c.Staff {
		role, err := domain.ParseRole(e.Role)
		if err != nil {
			continue
		}
		roster = append(roster, domain.StaffUser{ID: e.ID, Name: e.Name, Role: role, PIN: e.PIN})
	}
	return roster
}

// ShiftWindow returns the configured sign-in window.
func (c *Config) ShiftWindow() domain.ShiftWindow {
	return domain.ShiftWindow{Start: c.Shift.Start, End: c.Shift.End}
}
