package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Natnat0905/GeoChat/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("geochat", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return
		}

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(10 * time.Second))
		result, err := checker.Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if err != nil {
			fmt.Fprintln(os.Stderr, "update check failed:", err)
			return
		}
		if result.UpdateAvailable {
			fmt.Printf("Update available: %s (run geochat update)\n", result.LatestVersion)
			if result.ReleaseURL != "" {
				fmt.Println(result.ReleaseURL)
			}
			return
		}
		fmt.Println("Up to date.")
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
