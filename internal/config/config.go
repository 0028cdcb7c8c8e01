package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	Connections []Connection `mapstructure:"connections" yaml:"connections"`
	Preferences Preferences  `mapstructure:"preferences" yaml:"preferences"`
}

// Connection is a saved PostgreSQL attachment profile. Passwords are
// kept in the OS keychain, never in the config file.
type Connection struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Database string `mapstructure:"database" yaml:"database"`
	Username string `mapstructure:"username" yaml:"username"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

// Preferences holds user preferences.
type Preferences struct {
	// LabPath is the SQLite file opened for the default lab session.
	// Empty means an in-memory scratch database.
	LabPath string `mapstructure:"lab_path" yaml:"lab_path"`
	// Dataset is a SQL script loaded into fresh lab sessions.
	Dataset string `mapstructure:"dataset" yaml:"dataset"`
	Theme   string `mapstructure:"theme" yaml:"theme"`
}

// DSN builds a PostgreSQL connection string from the profile, pulling
// the password from the keychain when one is stored.
func (c Connection) DSN() string {
	var b strings.Builder
	b.WriteString("postgresql://")
	if c.Username != "" {
		b.WriteString(url.User(c.Username).String())
		if password, err := GetPassword(c.Name); err == nil && password != "" {
			b.WriteString(":")
			b.WriteString(url.QueryEscape(password))
		}
		b.WriteString("@")
	}
	b.WriteString(c.Host)
	if c.Port > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(c.Port))
	}
	b.WriteString("/")
	b.WriteString(c.Database)
	if c.SSLMode != "" {
		b.WriteString("?sslmode=")
		b.WriteString(c.SSLMode)
	}
	return b.String()
}

// DisplayString returns a human-readable summary of the connection.
func (c Connection) DisplayString() string {
	s := c.Host
	if c.Port > 0 {
		s += ":" + strconv.Itoa(c.Port)
	}
	s += "/" + c.Database
	if c.Username != "" {
		s = c.Username + "@" + s
	}
	return s
}

// ParseDSN parses a PostgreSQL connection string into a Connection
// profile plus the embedded password, if any.
func ParseDSN(dsn string) (Connection, string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return Connection{}, "", fmt.Errorf("invalid DSN: %w", err)
	}

	conn := Connection{
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
		SSLMode:  u.Query().Get("sslmode"),
	}

	var password string
	if u.User != nil {
		conn.Username = u.User.Username()
		if p, ok := u.User.Password(); ok {
			password = p
		}
	}

	if portStr := u.Port(); portStr != "" {
		conn.Port, _ = strconv.Atoi(portStr)
	}
	if conn.Port == 0 {
		conn.Port = 5432
	}

	conn.Name = fmt.Sprintf("%s-%d-%s", conn.Host, conn.Port, conn.Database)

	return conn, password, nil
}

// HasConnection checks if a connection with the given name exists.
func (cfg *Config) HasConnection(name string) bool {
	for _, c := range cfg.Connections {
		if c.Name == name {
			return true
		}
	}
	return false
}

// AddConnection appends a connection if it doesn't already exist.
func (cfg *Config) AddConnection(conn Connection) {
	if !cfg.HasConnection(conn.Name) {
		cfg.Connections = append(cfg.Connections, conn)
	}
}
