package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print version, commit, protocol and build information for ibtws.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version)
				return
			}

			fmt.Println()
			fmt.Printf("  Version:        %s\n", version)
			fmt.Printf("  Commit:         %s\n", commit)
			fmt.Printf("  Built:          %s\n", date)
			fmt.Printf("  Client version: %d\n", protocol.ClientVersion)
			fmt.Printf("  Min server:     %d\n", protocol.MinServerVersion)
			fmt.Printf("  Go version:     %s\n", runtime.Version())
			fmt.Printf("  OS/Arch:        %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Println()
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
