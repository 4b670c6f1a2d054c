package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./l10nfilter.db"
	} `yaml:"database"`

	Audit struct {
		Product   string   `yaml:"product"`   // "mail"
		Reference string   `yaml:"reference"` // en-US tree
		Locale    string   `yaml:"locale"`    // localized tree
		Code      string   `yaml:"code"`      // "de"
		Workers   int      `yaml:"workers"`   // 0 = GOMAXPROCS
		Exclude   []string `yaml:"exclude"`   // doublestar globs
	} `yaml:"audit"`

	Filters struct {
		Pack string `yaml:"pack"` // optional YAML rule pack
	} `yaml:"filters"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`

	Server struct {
		Addr           string   `yaml:"addr"` // ":8080"
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Waivers []audit.Waiver `yaml:"waivers"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./l10nfilter.db"
	c.Audit.Product = "mail"
	c.Audit.Exclude = []string{"**/*.orig", "**/*.rej", "**/*~"}
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	c.Server.Addr = ":8080"
	return c
}

// LoadConfig reads path (optional) over the defaults, then applies
// L10NFILTER_* environment overrides. A missing file is not an error;
// a malformed one is.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return c, fmt.Errorf("parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return c, fmt.Errorf("read config: %w", err)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("L10NFILTER_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("L10NFILTER_PRODUCT"); v != "" {
		c.Audit.Product = v
	}
	if v := os.Getenv("L10NFILTER_REFERENCE"); v != "" {
		c.Audit.Reference = v
	}
	if v := os.Getenv("L10NFILTER_LOCALE_DIR"); v != "" {
		c.Audit.Locale = v
	}
	if v := os.Getenv("L10NFILTER_LOCALE"); v != "" {
		c.Audit.Code = v
	}
	if v := os.Getenv("L10NFILTER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Audit.Workers = n
		}
	}
	if v := os.Getenv("L10NFILTER_RULE_PACK"); v != "" {
		c.Filters.Pack = v
	}
	if v := os.Getenv("L10NFILTER_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("L10NFILTER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("L10NFILTER_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("L10NFILTER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("L10NFILTER_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	return c, nil
}
