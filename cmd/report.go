package cmd

import (
	"github.com/smazurov/mediacaps/internal/report"
	"github.com/spf13/cobra"
)

// NewReportCmd renders the capability table of a platform.
func NewReportCmd() *cobra.Command {
	var flags sessionFlags
	var format string

	cmd := &cobra.Command{
		Use:   "report <platform>",
		Short: "Print the full capability table of a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			return report.Render(cmd.OutOrStdout(), report.Snapshot(sess.Caps), f)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format (toml, yaml, json)")
	return cmd
}

// NewDiffCmd compares the capability tables of two platforms.
func NewDiffCmd() *cobra.Command {
	var flags sessionFlags
	var format string

	cmd := &cobra.Command{
		Use:     "diff <platform> <platform>",
		Short:   "Show capability differences between two platforms",
		Example: "  mediacaps diff skylake icelake",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer from.Close()
			to, err := flags.open(args[1])
			if err != nil {
				return err
			}
			defer to.Close()

			r, err := report.Compare(report.Snapshot(from.Caps), report.Snapshot(to.Caps))
			if err != nil {
				return err
			}

			if format == "text" {
				out := cmd.OutOrStdout()
				for _, c := range r.Changes {
					if _, err := out.Write([]byte(c.String() + "\n")); err != nil {
						return err
					}
				}
				return nil
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return report.Render(cmd.OutOrStdout(), r, f)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, toml, yaml, json)")
	return cmd
}
