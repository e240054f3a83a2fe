package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func newLearnCommand() *cobra.Command {
	var rf bool

	cmd := &cobra.Command{
		Use:   "learn <ip>",
		Short: "Capture an IR or RF code from a physical remote into a Remote device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseRequiredIP("ip", args[0])
			if err != nil {
				return err
			}
			local, err := parseOptionalIP(flagLocalIP)
			if err != nil {
				return err
			}

			dev, err := broadlink.FromIP(addr, local)
			if err != nil {
				return err
			}
			remote, err := dev.AsRemote()
			if err != nil {
				return err
			}

			var code []byte
			if rf {
				fmt.Fprintln(cmd.OutOrStdout(), "sweeping for an active RF remote, press and hold a button now...")
				code, err = remote.LearnRF()
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "point the remote at the device and press a button now...")
				code, err = remote.LearnIR()
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(code))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rf, "rf", false, "learn an RF code instead of IR")
	return cmd
}
