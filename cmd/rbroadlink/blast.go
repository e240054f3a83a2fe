package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func newBlastCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "blast <ip> <hex-code>",
		Short: "Transmit a previously learned IR/RF code from a Remote device",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := parseRequiredIP("ip", args[0])
			if err != nil {
				return err
			}
			code, err := hex.DecodeString(args[1])
			if err != nil {
				return fmt.Errorf("decoding hex code: %w", err)
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
			return remote.SendCode(code)
		},
	}
}
