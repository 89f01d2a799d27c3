package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/resdb/internal/config"
)

// backendValue is a pflag.Value restricted to the known query backends.
type backendValue string

var _ pflag.Value = (*backendValue)(nil)

func (b *backendValue) String() string { return string(*b) }

func (b *backendValue) Set(s string) error {
	switch s {
	case config.BackendMemory, config.BackendSQLite:
		*b = backendValue(s)
		return nil
	}
	return errors.Newf("must be %q or %q", config.BackendMemory, config.BackendSQLite)
}

func (b *backendValue) Type() string { return "backend" }

// resolve returns the flag value, falling back to the config setting.
func (b *backendValue) resolve(cfg *config.Config) string {
	if *b != "" {
		return string(*b)
	}
	if cfg == nil {
		return config.BackendMemory
	}
	return cfg.BackendOrDefault()
}
