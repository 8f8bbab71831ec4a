// Package config loads solver settings from defaults, an optional config
// file, TABLEAU_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"q.log/tableau/logging"
	"q.log/tableau/penalty"
	"q.log/tableau/simplex"
)

const EnvPrefix = "TABLEAU"

type Config struct {
	Method        string         `mapstructure:"method"         validate:"method"`
	Resolver      string         `mapstructure:"resolver"       validate:"resolver"`
	Tolerance     float64        `mapstructure:"tolerance"      validate:"gt=0,lt=1"`
	MaxIterations int            `mapstructure:"max_iterations" validate:"gte=0"`
	Verbose       bool           `mapstructure:"verbose"`
	Log           logging.Config `mapstructure:"log"`
}

var defaults = map[string]any{
	"method":          simplex.TwoPhase.String(),
	"resolver":        "lexicographic",
	"tolerance":       penalty.DefaultTolerance,
	"max_iterations":  0,
	"verbose":         false,
	"log.level":       "warn",
	"log.format":      "text",
	"log.file":        "",
	"log.max_size":    10,
	"log.max_backups": 3,
	"log.max_age":     7,
	"log.compress":    false,
}

// flag name -> config key
var flagKeys = map[string]string{
	"method":         "method",
	"resolver":       "resolver",
	"tolerance":      "tolerance",
	"max-iterations": "max_iterations",
	"verbose":        "verbose",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"log-file":       "log.file",
}

// RegisterFlags adds the flags Load knows how to bind.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("method", "m", simplex.TwoPhase.String(), "solution method: twophase or bigm")
	fs.String("resolver", "lexicographic", "Big-M comparison: lexicographic or substitution")
	fs.Float64("tolerance", penalty.DefaultTolerance, "magnitude treated as zero")
	fs.Int("max-iterations", 0, "pivot limit per phase, 0 for C(n, m)")
	fs.BoolP("verbose", "v", false, "print the tableau after every pivot")
	fs.String("log-level", "warn", "debug, info, warn or error")
	fs.String("log-format", "text", "text or json")
	fs.String("log-file", "", "write logs to a rotating file instead of stderr")
}

// Load reads the configuration. path and flags may both be empty.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "config: bind flag %s", name)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "config: read")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := newValidator().Struct(&c); err != nil {
		return nil, errors.Wrap(err, "config: validate")
	}
	return &c, nil
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("method", func(fl validator.FieldLevel) bool {
		_, err := simplex.ParseMethod(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("resolver", func(fl validator.FieldLevel) bool {
		_, err := penalty.ParseStrategy(fl.Field().String(), penalty.DefaultTolerance)
		return err == nil
	})
	return validate
}

// SolveMethod returns the parsed method.
func (c *Config) SolveMethod() (simplex.Method, error) {
	return simplex.ParseMethod(c.Method)
}

// Options turns the settings into solver options.
func (c *Config) Options() ([]simplex.Option, error) {
	r, err := penalty.ParseStrategy(c.Resolver, c.Tolerance)
	if err != nil {
		return nil, err
	}
	return []simplex.Option{
		simplex.WithResolver(r),
		simplex.WithTolerance(c.Tolerance),
		simplex.WithMaxIterations(c.MaxIterations),
	}, nil
}
