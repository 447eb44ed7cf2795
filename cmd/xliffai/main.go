// Command xliffai matches captured UI text against XLIFF trans-units,
// applies translations, and scores AI translations.
package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
