// fakegen generates locale aware fake data from the command line.
//
// Usage:
//
//	fakegen generate <category> [--locale=<code>] [--seed=<n>] [--count=<n>] [--param k=v]...
//	fakegen build --spec=<file> [--locale=<code>] [--count=<n>] [--output=json|yaml|table|markdown]
//	fakegen locales
//	fakegen categories
//	fakegen validate [locale...]
//	fakegen import --db=<path> <locale file>...
//
// Data comes from --db (SQLite), else --data-dir (locale files), else the
// locales compiled into the binary.
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
