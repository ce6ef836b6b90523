package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/midbel/errtype/format"
	"github.com/midbel/errtype/value"
)

var ErrConfig = errors.New("invalid configuration")

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Config struct {
	Log   Log   `yaml:"log"`
	Print Print `yaml:"print"`
	CSV   CSV   `yaml:"csv"`
}

type Log struct {
	Level string `yaml:"level"`
}

type Print struct {
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
	Width  int    `yaml:"width"`
	Number string `yaml:"number"`
}

type CSV struct {
	Comma     string `yaml:"comma"`
	TrimSpace bool   `yaml:"trim_space"`
}

func Default() *Config {
	return &Config{
		Log: Log{
			Level: "warn",
		},
		Print: Print{
			Format: FormatText,
			Color:  true,
			Number: format.DefaultNumberPattern,
		},
		CSV: CSV{
			Comma: ",",
		},
	}
}

// Load reads file over the default configuration. A missing file is not an
// error.
func Load(file string) (*Config, error) {
	cfg := Default()
	if file == "" {
		return cfg, nil
	}
	r, err := os.Open(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	defer r.Close()
	return cfg, cfg.Decode(r)
}

func (c *Config) Decode(r io.Reader) error {
	err := yaml.NewDecoder(r).Decode(c)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	c.Print.Format = strings.ToLower(c.Print.Format)
	if !slices.Contains([]string{FormatText, FormatJSON, FormatCSV}, c.Print.Format) {
		return fmt.Errorf("%s: %w: unknown output format", c.Print.Format, ErrConfig)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%s: %w: %s", c.Log.Level, ErrConfig, err)
	}
	if _, err := c.Comma(); err != nil {
		return err
	}
	if c.Print.Width < 0 {
		return fmt.Errorf("%d: %w: negative width", c.Print.Width, ErrConfig)
	}
	if _, err := c.Formatter(); err != nil {
		return fmt.Errorf("%w: %s", ErrConfig, err)
	}
	return nil
}

// Comma gives the field separator of csv files. "\t" is accepted for
// tabulation.
func (c *Config) Comma() (rune, error) {
	str := c.CSV.Comma
	if str == "" {
		return ',', nil
	}
	if str == `\t` {
		return '\t', nil
	}
	r, n := utf8.DecodeRuneInString(str)
	if r == utf8.RuneError || n != len(str) {
		return 0, fmt.Errorf("%q: %w: separator must be a single character", str, ErrConfig)
	}
	return r, nil
}

// Formatter gives the formatter used to write cell values. Numbers follow the
// configured pattern or are written as is when no pattern is set.
func (c *Config) Formatter() (*format.ValueFormatter, error) {
	vf := format.FormatValue()
	vf.Set(value.TypeBool, format.FormatBool())
	if c.Print.Number == "" {
		return vf, nil
	}
	return vf, vf.Number(c.Print.Number)
}

// Logger builds a console logger writing to stderr at the configured level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
