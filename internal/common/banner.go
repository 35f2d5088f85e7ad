package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config) {
	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 8888888b.     d8.  88888888 8888888b.  8888 888b     d888  .d88b.`,
		` 888   Y88b   d888.    88    888   Y88b  88  8888b   d8888 d88""88b`,
		` 888    888  d8"888    88    888    888  88  88888b.d88888 888  888`,
		` 8888888P"  d8" 888    88    8888888P"   88  888Y88888P888 888  888`,
		` 888       d8888888    88    888 T88b    88  888 Y888P 888 888  888`,
		` 888      d8"   888    88    888  T88b  8888 888  Y8P  888 Y88..88P`,
		` 888     d8"    888    88    888   T88b 8888 888   "   888  "Y88P"`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Personal Finance & Realized-Trade Ledger%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	kvPad := 14
	kvLines := [][2]string{
		{"Version", GetVersion()},
		{"Build", GetBuild()},
		{"Commit", GetGitCommit()},
		{"Environment", config.Environment},
		{"Storage", config.Storage.Path},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
}
