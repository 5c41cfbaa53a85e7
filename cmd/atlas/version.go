package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/cli"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

var versionFlags struct {
	format string
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	Long:              `Print the Atlas version with its Git commit, build date and Go runtime.`,
	PersistentPreRunE: noSetup,
	RunE:              printVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVar(&versionFlags.format, "format", "text", "output format: text, json")
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (b BuildInfo) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Atlas %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s\nOS/Arch: %s\n",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
	return err
}

func printVersion(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(versionFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	return writeOutput(cmd, format, BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	})
}

// noSetup skips configuration loading for commands that do not need it.
func noSetup(cmd *cobra.Command, args []string) error {
	return nil
}
