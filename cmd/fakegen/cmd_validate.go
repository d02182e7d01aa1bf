package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [locale...]",
		Short: "Check that locale data resolves and can be sampled",
		Long:  "validate loads each locale (all locales of the source when none are\ngiven) and reports unresolvable placeholders, malformed templates and\nunusable pools.",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, closer, err := a.openGenerator()
			if err != nil {
				return err
			}
			store := gen.Store()

			locales := args
			if len(locales) == 0 {
				if locales, err = store.Locales(); err != nil {
					return closeWith(err, closer)
				}
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, locale := range locales {
				if err := store.Validate(locale); err != nil {
					failed++
					a.logger.Warn("locale invalid", slog.String("locale", locale), slog.Any("error", err))
					fmt.Fprintf(out, "%s: FAIL\n%v\n", locale, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", locale)
			}

			if failed > 0 {
				return closeWith(fmt.Errorf("validation failed for %d of %d locale(s)", failed, len(locales)), closer)
			}
			return closeWith(nil, closer)
		},
	}
}
