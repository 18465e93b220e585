// Package config resolves the settings of a pagingsim run from built-in
// defaults, a .env file, the environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
)

// Environment variables read by Load.
const (
	EnvPageSize  = "PAGINGSIM_PAGE_SIZE"
	EnvNumPages  = "PAGINGSIM_NUM_PAGES"
	EnvNumFrames = "PAGINGSIM_NUM_FRAMES"
	EnvPolicy    = "PAGINGSIM_POLICY"
	EnvLogLevel  = "PAGINGSIM_LOG_LEVEL"
	EnvDB        = "PAGINGSIM_DB"
)

// DefaultEnvFile is the file that Load reads when no other is named.
const DefaultEnvFile = ".env"

// ErrInvalidValue is wrapped by the errors of settings that cannot be used.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config holds every setting of a run.
type Config struct {
	PageSize  int
	NumPages  int
	NumFrames int
	Policy    string

	// TraceFile is the trace to read. Empty or "-" means standard input.
	TraceFile string

	Detailed bool
	Report   bool

	// DBPath is the SQLite file that receives the recorded events. No events
	// are recorded when it is empty.
	DBPath string

	Monitor     bool
	MonitorPort int
	OpenBrowser bool

	LogLevel string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		PageSize:  4096,
		NumPages:  64,
		NumFrames: 16,
		Policy:    mmu.FIFO.String(),
		LogLevel:  "INFO",
	}
}

// Load returns the default settings overridden by the variables of envFile
// and of the environment. Variables already set in the environment win over
// the file. A missing DefaultEnvFile is not an error; any other missing file
// is.
func Load(envFile string) (Config, error) {
	c := Default()

	if err := loadEnvFile(envFile); err != nil {
		return c, err
	}

	if err := c.applyEnv(); err != nil {
		return c, err
	}

	return c, nil
}

func loadEnvFile(envFile string) error {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}

	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}

	if optional && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("loading %s: %w", envFile, err)
}

func (c *Config) applyEnv() error {
	ints := []struct {
		name  string
		value *int
	}{
		{EnvPageSize, &c.PageSize},
		{EnvNumPages, &c.NumPages},
		{EnvNumFrames, &c.NumFrames},
	}

	for _, v := range ints {
		s, ok := os.LookupEnv(v.name)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidValue, v.name, s)
		}

		*v.value = n
	}

	if s, ok := os.LookupEnv(EnvPolicy); ok {
		c.Policy = s
	}

	if s, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = s
	}

	if s, ok := os.LookupEnv(EnvDB); ok {
		c.DBPath = s
	}

	return nil
}

// Validate checks the settings before any system is built.
func (c Config) Validate() error {
	var errs []error

	if c.PageSize <= 0 {
		errs = append(errs,
			fmt.Errorf("%w: page size %d", ErrInvalidValue, c.PageSize))
	}

	if c.NumPages <= 0 {
		errs = append(errs,
			fmt.Errorf("%w: %d pages", ErrInvalidValue, c.NumPages))
	}

	if c.NumFrames <= 0 {
		errs = append(errs,
			fmt.Errorf("%w: %d frames", ErrInvalidValue, c.NumFrames))
	}

	if _, err := mmu.ParseReplacementPolicy(c.Policy); err != nil {
		errs = append(errs, err)
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	if c.OpenBrowser && !c.Monitor {
		errs = append(errs,
			fmt.Errorf("%w: opening a browser requires monitoring",
				ErrInvalidValue))
	}

	return errors.Join(errs...)
}

// Level returns the log level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("%w: log level %q", ErrInvalidValue, c.LogLevel)
	}

	return level, nil
}

// Builder returns an MMU builder sized by the settings. The settings must be
// valid.
func (c Config) Builder() mmu.Builder {
	policy, err := mmu.ParseReplacementPolicy(c.Policy)
	if err != nil {
		panic(err)
	}

	return mmu.MakeBuilder().
		WithPageSize(c.PageSize).
		WithNumPages(c.NumPages).
		WithNumFrames(c.NumFrames).
		WithPolicy(policy)
}

// ReadsStdin tells if the trace comes from standard input.
func (c Config) ReadsStdin() bool {
	return c.TraceFile == "" || c.TraceFile == "-"
}
