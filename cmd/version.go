package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd prints the build metadata.
func NewVersionCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var names []string
			for _, g := range caps.Generations() {
				names = append(names, g.Name)
			}
			info := version.Get(names...)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return c
}
