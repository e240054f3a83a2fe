package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <ip>",
		Short: "Discover, authenticate, and print identity for a single device",
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

			info := dev.Info()
			fmt.Printf("%s\n", dev)
			fmt.Printf("  model code:  0x%04X\n", info.ModelCode)
			fmt.Printf("  auth id:     0x%08X\n", info.AuthID)
			return nil
		},
	}
}
