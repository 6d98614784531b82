package cmd

import (
	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion records the version stamped into the binary at build time.
func SetVersion(v string) {
	appVersion = v
}

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "testrail-mcp-server",
	Short: "MCP server exposing TestRail test management as tools",
	Long: `testrail-mcp-server is a Model Context Protocol server that exposes
TestRail projects, test suites, sections, and test cases as callable tools.

Tool calls are validated, translated into TestRail REST API requests with
Basic authentication, and their responses returned as text. The server
speaks MCP over stdio by default; an HTTP transport can be selected in the
configuration file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.SetVersionTemplate("testrail-mcp-server v{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = appVersion
	return rootCmd.Execute()
}
