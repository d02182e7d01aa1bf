package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	fakedata "github.com/goliatone/go-fakedata"
	"github.com/goliatone/go-fakedata/sources/sqlite"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <locale file>...",
		Short: "Seed a SQLite locale database from locale files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.db == "" {
				return errors.New("import requires --db or FAKEGEN_DB")
			}

			db, err := sqlite.Open(a.db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range args {
				table, err := readLocaleFile(path)
				if err != nil {
					return closeWith(err, db.Close)
				}
				if err := db.Import(cmd.Context(), table); err != nil {
					return closeWith(err, db.Close)
				}
				fmt.Fprintf(out, "imported %s (%d formats, %d pools)\n", table.Code, len(table.Formats), len(table.Pools))
			}
			return closeWith(nil, db.Close)
		},
	}
}

// readLocaleFile decodes a locale file, taking the code from the file name
// when the document does not declare one.
func readLocaleFile(path string) (*fakedata.LocaleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	table, err := fakedata.DecodeLocaleTable(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if table.Code == "" {
		base := filepath.Base(path)
		table.Code = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return table, nil
}
