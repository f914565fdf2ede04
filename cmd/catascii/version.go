package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"catascii-hq/catascii/pkg/cli"
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
	output string
}

// versionInfo is printed by the version command.
type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (v versionInfo) String() string {
	return fmt.Sprintf("catascii %s\nGit Commit: %s\nBuild Date: %s\nGo Version: %s\nOS/Arch: %s",
		v.Version, v.GitCommit, v.BuildDate, v.GoVersion, v.Platform)
}

func currentVersion() versionInfo {
	return versionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including Git commit and build date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(versionFlags.output)
		if err != nil {
			return err
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), currentVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFlags.output, "output", "o", string(cli.FormatText), "output format (text, json)")
}
