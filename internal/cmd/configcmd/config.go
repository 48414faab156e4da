// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage md2docx configuration",
		Long:  `Commands for viewing, testing, and clearing md2docx configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envVars maps each setting to the environment variables that can supply it.
var envVars = map[string][]string{
	"output_dir":             {"MD2DOCX_OUTPUT_DIR"},
	"engine":                 {"MD2DOCX_ENGINE"},
	"workers":                {"MD2DOCX_WORKERS"},
	"title_from_frontmatter": {"MD2DOCX_TITLE_FROM_FRONTMATTER"},
	"log_level":              {"MD2DOCX_LOG_LEVEL", "LOG_LEVEL"},
	"log_format":             {"MD2DOCX_LOG_FORMAT"},
	"output_format":          {"MD2DOCX_OUTPUT_FORMAT"},
}

// envVarNames lists every environment variable md2docx reads, in display order.
var envVarNames = []string{
	"MD2DOCX_OUTPUT_DIR", "MD2DOCX_ENGINE", "MD2DOCX_WORKERS",
	"MD2DOCX_TITLE_FROM_FRONTMATTER", "MD2DOCX_LOG_LEVEL", "LOG_LEVEL",
	"MD2DOCX_LOG_FORMAT", "MD2DOCX_OUTPUT_FORMAT",
}
