package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/bridgewise/internal/questionbank"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// buildVersion prefers the ldflags value, then the module version recorded
// by `go install`.
func buildVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, "bridgewise", buildVersion())
	fmt.Fprintf(w, "question packs: format %s.x\n", questionbank.SupportedFormat)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and supported question pack format",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}
