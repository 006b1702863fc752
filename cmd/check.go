package cmd

import (
	"fmt"

	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/spf13/cobra"
)

// NewCheckEncodeCmd checks an encode frame size.
func NewCheckEncodeCmd() *cobra.Command {
	var flags sessionFlags

	cmd := &cobra.Command{
		Use:     "check-encode <platform> <profile> <WIDTHxHEIGHT>",
		Short:   "Check whether an encode resolution is supported",
		Example: "  mediacaps check-encode cannonlake H264Main 1920x1088",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := caps.ParseProfile(args[1])
			if err != nil {
				return err
			}
			width, height, err := parseSize(args[2])
			if err != nil {
				return err
			}

			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			return printCheck(cmd, sess.CheckEncodeResolution(profile, width, height))
		},
	}
	flags.register(cmd)
	return cmd
}

// NewCheckDecodeCmd checks a decode frame size.
func NewCheckDecodeCmd() *cobra.Command {
	var flags sessionFlags
	var codecMode string

	cmd := &cobra.Command{
		Use:     "check-decode <platform> <profile> <WIDTHxHEIGHT>",
		Short:   "Check whether a decode resolution is supported",
		Example: "  mediacaps check-decode icelake HEVCMain 8192x4320",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := caps.ParseProfile(args[1])
			if err != nil {
				return err
			}
			width, height, err := parseSize(args[2])
			if err != nil {
				return err
			}
			mode := profile.DecodeMode()
			if codecMode != "" {
				if mode, err = caps.ParseCodecMode(codecMode); err != nil {
					return err
				}
			}

			sess, err := flags.open(args[0])
			if err != nil {
				return err
			}
			defer sess.Close()

			return printCheck(cmd, sess.CheckDecodeResolution(mode, profile, width, height))
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&codecMode, "codec-mode", "", "Decoder codec mode (defaults to the profile's)")
	return cmd
}

// printCheck prints the outcome. A rejected size is an error so the exit
// status reflects it.
func printCheck(cmd *cobra.Command, err error) error {
	switch caps.StatusOf(err) {
	case caps.StatusSuccess:
		fmt.Fprintln(cmd.OutOrStdout(), "supported")
		return nil
	case caps.StatusResolutionNotSupported:
		fmt.Fprintf(cmd.OutOrStdout(), "not supported: %v\n", err)
		return err
	default:
		return err
	}
}
