package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nyaruka/phonenumbers"
	"github.com/spf13/cobra"

	fakedata "github.com/goliatone/go-fakedata"
	"github.com/goliatone/go-fakedata/internal/logging"
	"github.com/goliatone/go-fakedata/modules/libphonenumber"
	"github.com/goliatone/go-fakedata/sources/sqlite"
)

// app carries the persistent flags shared by every subcommand
type app struct {
	locale    string
	seed      uint64
	seeded    bool
	dataDir   string
	db        string
	logLevel  string
	logFormat string

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fakegen",
		Short: "Generate locale aware fake data",
		Long:  "fakegen produces realistic names, addresses, phone numbers and whole\nrecords for a locale from template and value pool data.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		Version:           version,
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.locale, "locale", "l", "en", "Locale code")
	f.Uint64Var(&a.seed, "seed", 0, "Seed for reproducible output")
	f.StringVar(&a.dataDir, "data-dir", "", "Directory of locale files (yaml, json, toml)")
	f.StringVar(&a.db, "db", "", "SQLite locale database")
	f.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(
		newGenerateCmd(a),
		newBuildCmd(a),
		newLocalesCmd(a),
		newCategoriesCmd(a),
		newValidateCmd(a),
		newImportCmd(a),
	)
	return root
}

// setup merges environment defaults into flags that were not set explicitly
// and installs the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	override := func(name string, target *string, value string) {
		if value != "" && !flags.Changed(name) {
			*target = value
		}
	}
	override("locale", &a.locale, cfg.Locale)
	override("data-dir", &a.dataDir, cfg.DataDir)
	override("db", &a.db, cfg.DB)
	override("log-level", &a.logLevel, cfg.LogLevel)
	override("log-format", &a.logFormat, cfg.LogFormat)

	a.seeded = flags.Changed("seed")
	if !a.seeded && cfg.Seed != nil {
		a.seed = *cfg.Seed
		a.seeded = true
	}

	level, err := logging.ParseLevel(a.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, a.logFormat, cmd.ErrOrStderr())
	a.logger = logging.New("fakegen")
	return nil
}

// openGenerator builds a generator over the selected data source. The returned
// close func releases the source and is never nil.
func (a *app) openGenerator(opts ...fakedata.Option) (*fakedata.Generator, func() error, error) {
	closer := func() error { return nil }

	var source fakedata.Source
	switch {
	case a.db != "":
		db, err := sqlite.Open(a.db)
		if err != nil {
			return nil, closer, err
		}
		source, closer = db, db.Close
	case a.dataDir != "":
		source = fakedata.NewDirSource(a.dataDir)
	default:
		source = fakedata.EmbeddedSource()
	}

	options := []fakedata.Option{
		fakedata.WithSource(source),
		fakedata.WithLogger(logging.New("store")),
		fakedata.WithHooks(a.debugHook()),
		fakedata.WithExtraProviders(
			libphonenumber.Provider("phone_e164", libphonenumber.WithFormat(phonenumbers.E164)),
		),
	}
	if hasDefaultLocale(source) {
		options = append(options, fakedata.WithDefaultLocale(fakedata.DefaultLocaleCode))
	}
	if a.seeded {
		options = append(options, fakedata.WithSeed(a.seed))
	}
	options = append(options, opts...)

	cfg, err := fakedata.NewConfig(options...)
	if err != nil {
		return nil, closer, errors.Join(err, closer())
	}
	gen, err := cfg.BuildGenerator()
	if err != nil {
		return nil, closer, errors.Join(err, closer())
	}
	return gen, closer, nil
}

func (a *app) debugHook() fakedata.GenerateHook {
	return fakedata.GenerateHookFuncs{
		After: func(ctx *fakedata.HookContext) {
			if ctx.Error != nil {
				a.logger.Debug("generate failed",
					slog.String("category", ctx.Category),
					slog.String("locale", ctx.Locale),
					slog.Any("error", ctx.Error))
				return
			}
			a.logger.Debug("generated",
				slog.String("category", ctx.Category),
				slog.String("locale", ctx.Locale),
				slog.String("key", ctx.ResolvedKey()),
				slog.String("value", ctx.Result))
		},
	}
}

func hasDefaultLocale(source fakedata.Source) bool {
	lister, ok := source.(fakedata.LocaleLister)
	if !ok {
		return false
	}
	locales, err := lister.Locales()
	if err != nil {
		return false
	}
	return slices.Contains(locales, fakedata.DefaultLocaleCode)
}

func closeWith(err error, closer func() error) error {
	if cerr := closer(); cerr != nil {
		return errors.Join(err, fmt.Errorf("close source: %w", cerr))
	}
	return err
}
