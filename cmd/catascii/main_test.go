package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"catascii-hq/catascii/pkg/cli"
)

// execute runs the root command with args after resetting global flag
// state, returning stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfgFile = ""
	envFile = defaultEnvFile
	serveFlags.listenAddress, serveFlags.logLevel, serveFlags.watch = "", "", false
	renderFlags.output, renderFlags.width, renderFlags.noColor = "-", 0, false
	renderFlags.fragment, renderFlags.info, renderFlags.format = false, false, string(cli.FormatText)
	versionFlags.output = string(cli.FormatText)
	resetChanged(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// resetChanged clears pflag's Changed marker on every flag so one test's
// explicit flags do not leak into the next.
func resetChanged(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) { f.Changed = false }
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetChanged(sub)
	}
}
