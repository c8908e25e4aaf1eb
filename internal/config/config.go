// Configuration is loaded from a yaml file placed on the server and validated against the rules
// that apply to this service before anything else is started.

package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type DatabaseType string

const (
	Mysql    DatabaseType = "mysql"
	Inmemory DatabaseType = "inmemory"
)

type LogStyle string

const (
	Plain LogStyle = "plain"
	Json  LogStyle = "json"
)

type (
	Application struct {
		Service  ServiceConfig  `yaml:"service"`
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Security SecurityConfig `yaml:"security"`
		Logging  LoggingConfig  `yaml:"logging"`
	}

	ServiceConfig struct {
		Name string `yaml:"name"`
		// GroupService is the base url of the member/group service. Optional.
		GroupService string `yaml:"group_service"`
	}

	ServerConfig struct {
		BaseAddress  string `yaml:"base_address"`
		Port         int    `yaml:"port"`
		ReadTimeout  int    `yaml:"read_timeout_seconds"`
		WriteTimeout int    `yaml:"write_timeout_seconds"`
		IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	}

	DatabaseConfig struct {
		Use        DatabaseType `yaml:"use"`
		Username   string       `yaml:"username"`
		Password   string       `yaml:"password"`
		Database   string       `yaml:"database"`
		Parameters []string     `yaml:"parameters"`
	}

	SecurityConfig struct {
		Fixed FixedTokenConfig    `yaml:"fixed_token"`
		Oidc  OpenIdConnectConfig `yaml:"oidc"`
		Cors  CorsConfig          `yaml:"cors"`
	}

	FixedTokenConfig struct {
		Api string `yaml:"api"`
	}

	OpenIdConnectConfig struct {
		TokenCookieName    string   `yaml:"token_cookie_name"`
		TokenPublicKeysPEM []string `yaml:"token_public_keys_PEM"`
		AdminRole          string   `yaml:"admin_role"`
	}

	CorsConfig struct {
		DisableCors bool   `yaml:"disable"`
		AllowOrigin string `yaml:"allow_origin"`
	}

	LoggingConfig struct {
		Severity string   `yaml:"severity"`
		Style    LogStyle `yaml:"style"`
	}
)

func UnmarshalFromYamlConfiguration(r io.Reader) (*Application, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, err
	}

	return conf, nil
}

// LoadConfiguration reads and validates the configuration file at path.
func LoadConfiguration(path string, logFunc func(format string, v ...interface{})) (*Application, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	conf, err := UnmarshalFromYamlConfiguration(file)
	if err != nil {
		return nil, err
	}

	if err := Validate(conf, logFunc); err != nil {
		return nil, err
	}

	return conf, nil
}
