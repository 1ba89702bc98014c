// cmd/evalboard/main.go
package main

import (
	"os"

	evalboard "github.com/mwiater/evalboard/internal/commands"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = evalboard.SetVersionInfo
	executeCmd     = evalboard.Execute
	exit           = os.Exit
)

// main starts the evalboard CLI by delegating to the cobra root command and
// exits non-zero when the command fails.
func main() {
	setVersionInfo(version, commit, date)
	if err := executeCmd(); err != nil {
		exit(1)
	}
}
