package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	fakedata "github.com/goliatone/go-fakedata"
)

type buildOptions struct {
	spec   string
	count  int
	output string
	root   string
}

func newBuildCmd(a *app) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build structured records from a field spec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(opts.spec)
			if err != nil {
				return fmt.Errorf("read spec: %w", err)
			}
			spec, err := fakedata.ParseSpec(opts.spec, data)
			if err != nil {
				return err
			}

			gen, closer, err := a.openGenerator()
			if err != nil {
				return err
			}
			records, err := gen.BuildMany(spec, a.locale, opts.count)
			if err == nil {
				err = writeRecords(cmd.OutOrStdout(), spec, records, opts)
			}
			return closeWith(err, closer)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.spec, "spec", "s", "", "Field spec file, yaml or json (required)")
	f.IntVarP(&opts.count, "count", "n", 1, "Number of records")
	f.StringVarP(&opts.output, "output", "o", "json", "Output: json, yaml, table or markdown")
	f.StringVar(&opts.root, "root", "records", "Root key of json and yaml output")
	_ = cmd.MarkFlagRequired("spec")
	return cmd
}

func writeRecords(w io.Writer, spec fakedata.Spec, records []*fakedata.Record, opts buildOptions) error {
	switch opts.output {
	case "json":
		data, err := fakedata.RecordsJSON(records, opts.root)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]*fakedata.Record{opts.root: records}); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "table", "markdown":
		header := make([]string, len(spec))
		for i, field := range spec {
			header[i] = field.Name
		}
		rows := make([][]string, len(records))
		for i, record := range records {
			rows[i] = record.Values()
		}
		_, err := fmt.Fprintln(w, renderTable(header, rows, opts.output == "markdown"))
		return err
	default:
		return fmt.Errorf("unknown output %q", opts.output)
	}
}
