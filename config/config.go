package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Addr              string
	DBUrl             string
	DBDriver          string
	TokenSecret       string
	TokenTTL          time.Duration
	BcryptCost        int
	CorsOrigins       []string
	StaticDir         string
	StrictSubmissions bool
	LogFormat         string
	Debug             bool
}

// settings mirrors the TOML file layout; it is also the merge target for
// environment variables and command line flags.
type settings struct {
	Host              string   `toml:"host"`
	Port              uint     `toml:"port"`
	DBUrl             string   `toml:"db_url"`
	TokenSecret       string   `toml:"token_secret"`
	TokenTTL          duration `toml:"token_ttl"`
	BcryptCost        int      `toml:"bcrypt_cost"`
	CorsOrigins       []string `toml:"cors_origins"`
	StaticDir         string   `toml:"static_dir"`
	StrictSubmissions bool     `toml:"strict_submissions"`
	LogFormat         string   `toml:"log_format"`
	Debug             bool     `toml:"debug"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func defaults() settings {
	return settings{
		Host:        "0.0.0.0",
		Port:        5000,
		DBUrl:       "formpilot.sqlite",
		TokenTTL:    duration{time.Hour},
		BcryptCost:  10,
		CorsOrigins: []string{"*"},
		LogFormat:   "text",
	}
}

func ParseFlags() (Config, error) {
	return Parse(os.Args[1:], os.Getenv)
}

// Parse builds the configuration from defaults, an optional TOML file
// (-config), the DATABASE_URL, JWT_SECRET and PORT environment variables,
// and finally the command line flags that were explicitly set.
func Parse(args []string, getenv func(string) string) (cfg Config, err error) {
	def := defaults()

	fs := flag.NewFlagSet("formpilot", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML configuration file")
	host := fs.String("host", def.Host, "listen host name")
	port := fs.Uint("port", def.Port, "listen port number")
	dbURL := fs.String("db-url", def.DBUrl, "path to SQLite3 DB file, or a postgres:// URL")
	secret := fs.String("token-secret", "", "secret key for signing access tokens")
	ttl := fs.Duration("token-ttl", def.TokenTTL.Duration, "access token lifetime")
	cost := fs.Int("bcrypt-cost", def.BcryptCost, "bcrypt cost for password hashes")
	cors := fs.String("cors-origins", strings.Join(def.CorsOrigins, ","), "comma separated list of allowed CORS origins")
	staticDir := fs.String("static-dir", "", "serve a built client from this directory")
	strict := fs.Bool("strict-submissions", false, "validate submitted answers against the form")
	logFormat := fs.String("log-format", def.LogFormat, "log output format: text or json")
	debug := fs.Bool("debug", false, "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	s := def
	if *configPath != "" {
		if _, err = toml.DecodeFile(*configPath, &s); err != nil {
			err = fmt.Errorf("config parse failed (%s): %w", *configPath, err)
			return
		}
	}

	if v := getenv("DATABASE_URL"); v != "" {
		s.DBUrl = v
	}
	if v := getenv("JWT_SECRET"); v != "" {
		s.TokenSecret = v
	}
	if v := getenv("PORT"); v != "" {
		p, perr := strconv.ParseUint(v, 10, 16)
		if perr != nil {
			err = fmt.Errorf("invalid PORT %q: %w", v, perr)
			return
		}
		s.Port = uint(p)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			s.Host = *host
		case "port":
			s.Port = *port
		case "db-url":
			s.DBUrl = *dbURL
		case "token-secret":
			s.TokenSecret = *secret
		case "token-ttl":
			s.TokenTTL = duration{*ttl}
		case "bcrypt-cost":
			s.BcryptCost = *cost
		case "cors-origins":
			s.CorsOrigins = splitList(*cors)
		case "static-dir":
			s.StaticDir = *staticDir
		case "strict-submissions":
			s.StrictSubmissions = *strict
		case "log-format":
			s.LogFormat = *logFormat
		case "debug":
			s.Debug = *debug
		}
	})

	cfg = Config{
		Addr:              net.JoinHostPort(s.Host, strconv.Itoa(int(s.Port))),
		DBUrl:             s.DBUrl,
		DBDriver:          driverFor(s.DBUrl),
		TokenSecret:       s.TokenSecret,
		TokenTTL:          s.TokenTTL.Duration,
		BcryptCost:        s.BcryptCost,
		CorsOrigins:       s.CorsOrigins,
		StaticDir:         s.StaticDir,
		StrictSubmissions: s.StrictSubmissions,
		LogFormat:         s.LogFormat,
		Debug:             s.Debug,
	}
	err = cfg.Validate()
	return
}

func (cfg Config) Validate() error {
	if cfg.TokenSecret == "" {
		return errors.New("missing parameter -token-secret")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return nil
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func driverFor(dbURL string) string {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
