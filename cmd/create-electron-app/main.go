// @MX:ANCHOR: [AUTO] main is the entry point of the create-electron-app binary; any error exits with code 1.
// @MX:REASON: [AUTO] sole entry point of the executable, delegates to the CLI package
package main

import (
	"os"

	"github.com/modu-ai/create-electron-app/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
