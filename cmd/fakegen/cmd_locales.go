package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLocalesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List locales and their fallback chains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, closer, err := a.openGenerator()
			if err != nil {
				return err
			}

			store := gen.Store()
			codes, err := store.Locales()
			if err == nil && codes == nil {
				err = errors.New("data source cannot list its locales")
			}
			if err != nil {
				return closeWith(err, closer)
			}

			rows := make([][]string, 0, len(codes))
			for _, code := range codes {
				name := ""
				if table, err := store.Table(code); err == nil {
					name = table.Name
				}
				chain, err := store.Chain(code)
				described := strings.Join(chain, " -> ")
				if err != nil {
					described = "error: " + err.Error()
				}
				rows = append(rows, []string{code, name, described})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Locale", "Name", "Chain"}, rows, false))
			return closeWith(nil, closer)
		},
	}
}

func newCategoriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories generate accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, closer, err := a.openGenerator()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, category := range gen.Registry().Categories() {
				fmt.Fprintln(out, category)
			}
			return closeWith(nil, closer)
		},
	}
}
