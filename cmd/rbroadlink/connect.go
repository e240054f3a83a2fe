package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/barnettlynn/rbroadlink-go/pkg/broadlink"
)

func newConnectCommand() *cobra.Command {
	var (
		ssid     string
		security string
		password string
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Join a Broadlink device in factory/setup mode to a Wi-Fi network",
		Long: `Broadcasts an unauthenticated on-device setup message telling a
device in its own configuration SSID to join the named Wi-Fi network. Run
this while the host running rbroadlink is itself associated to the device's
temporary setup network; no reply is expected or awaited.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ssid == "" {
				return fmt.Errorf("--ssid is required")
			}

			if security != "open" && password == "" {
				entered, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = entered
			}

			conn, err := wirelessConnectionFor(security, ssid, password)
			if err != nil {
				return err
			}

			return broadlink.ConnectToNetwork(conn)
		},
	}

	cmd.Flags().StringVar(&ssid, "ssid", "", "SSID of the network to join (required)")
	cmd.Flags().StringVar(&security, "security", "wpa2", "security mode: open, wep, wpa1, wpa2, or wpa")
	cmd.Flags().StringVar(&password, "password", "", "network password (prompted interactively if omitted and security != open)")
	return cmd
}

// promptPassword reads a password from the controlling terminal without
// echoing it, the same way keyswap and permissionsedit collect key material.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Wi-Fi password: ")
	bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(bytes), nil
}

func wirelessConnectionFor(security, ssid, password string) (broadlink.WirelessConnection, error) {
	switch security {
	case "open":
		return broadlink.WirelessOpen(ssid), nil
	case "wep":
		return broadlink.WirelessWEP(ssid, password), nil
	case "wpa1":
		return broadlink.WirelessWPA1(ssid, password), nil
	case "wpa2":
		return broadlink.WirelessWPA2(ssid, password), nil
	case "wpa":
		return broadlink.WirelessWPA(ssid, password), nil
	default:
		return broadlink.WirelessConnection{}, fmt.Errorf("unknown --security %q: must be open, wep, wpa1, wpa2, or wpa", security)
	}
}
