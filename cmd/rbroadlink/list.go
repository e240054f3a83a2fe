package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Discover and authenticate every device on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			bcast, err := parseRequiredIP("broadcast-addr", flagBcastAddr)
			if err != nil {
				return err
			}
			local, err := parseOptionalIP(flagLocalIP)
			if err != nil {
				return err
			}

			devices, err := broadlink.List(bcast, local)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				fmt.Println("no devices found")
				return nil
			}
			for _, d := range devices {
				fmt.Println(d.String())
			}
			return nil
		},
	}
}
