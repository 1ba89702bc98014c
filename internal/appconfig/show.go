package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		d := Defaults()
		cfg = &d
	}
	opts := cfg.Options()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Report Path:     %s\n", cfg.ReportFilePath())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Preview Limit:   %d\n", opts.PreviewLimit)
	fmt.Fprintf(out, "  Preview Width:   %d\n", opts.PreviewWidth)
	fmt.Fprintf(out, "  Tokens Per Case: %d\n", opts.TokensPerCase)
	fmt.Fprintf(out, "  Listen Address:  %s\n", cfg.Addr())
	fmt.Fprintln(out, "  Views:")
	for _, v := range opts.Views {
		fmt.Fprintf(out, "    - %s (%s): %s\n", v.Name, v.Mode, strings.Join(v.Terms, ", "))
	}
}
