package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/spf13/cobra"
)

// NewPlatformsCmd lists the built-in platforms.
func NewPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported hardware platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := caps.NewRegistry(nil)
			if err := caps.RegisterBuiltins(reg); err != nil {
				return err
			}

			gens := make(map[string]string)
			for _, g := range caps.Generations() {
				for _, p := range g.Platforms {
					gens[p.String()] = g.Name
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tGENERATION")
			for _, p := range reg.Platforms() {
				fmt.Fprintf(w, "%s\t%s\n", p, gens[p.String()])
			}
			return w.Flush()
		},
	}
}

// NewProfilesCmd lists the registered profile entrypoints of a platform.
func NewProfilesCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "profiles <platform>",
		Short: "List profiles and entrypoints of a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROFILE\tENTRYPOINT\tCONFIGS")
			for _, e := range sess.Caps.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.Profile, e.Entrypoint, e.ConfigCount)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	return cmd
}

// NewAttribCmd resolves attributes of a profile entrypoint.
func NewAttribCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:   "attrib <platform> <profile> <entrypoint> [attribute...]",
		Short: "Query attribute values",
		Long: `Resolves attributes of a registered profile entrypoint. Without attribute
names every known attribute is queried. Attributes that do not apply print
as 0x80000000.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := caps.ParseProfile(args[1])
			if err != nil {
				return err
			}
			entrypoint, err := caps.ParseEntrypoint(args[2])
			if err != nil {
				return err
			}

			attribs := caps.AllAttribTypes()
			if len(args) > 3 {
				attribs = nil
				for _, name := range args[3:] {
					a, err := caps.ParseAttribType(name)
					if err != nil {
						return err
					}
					attribs = append(attribs, a)
				}
			}

			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			values, err := sess.GetConfigAttributes(profile, entrypoint, attribs)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ATTRIBUTE\tVALUE")
			for _, v := range values {
				fmt.Fprintf(w, "%s\t0x%08x\n", v.Type, v.Value)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	return cmd
}

// NewROICmd prints the AVC ROI limit of rate control modes.
func NewROICmd() *cobra.Command {
	var flags sessionFlags
	var modes []string

	cmd := &cobra.Command{
		Use:   "roi <platform>",
		Short: "Show the AVC region-of-interest limit per rate control mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RC_MODE\tMAX_ROI\tDELTA_QP")
			for _, name := range modes {
				mode, err := caps.ParseRCMode(name)
				if err != nil {
					return err
				}
				maxNum, deltaQP, err := sess.QueryAVCROIMaxNum(mode)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%t\n", mode, maxNum, deltaQP)
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&modes, "rc-mode", []string{"CQP", "CBR", "VBR"}, "Rate control modes to query")
	return cmd
}
