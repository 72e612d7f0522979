// Command cvr-i18n audits JSON locale files for duplicate keys, missing keys
// and key order.
package main

import (
	"os"

	"github.com/spf13/afero"
)

func main() {
	os.Exit(execute(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}
