package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "occlcull",
	Short: "run 2D occlusion culling over a scene",
	Long: `occlcull is the command-line application accompanying the occlcull
library:
	- load a scene description (YAML) naming OBJ meshes and their occluder flags,
	- replay the scene's draw/occluder schedule against an occlusion-culling context,
	- print the resulting visibility flags and propagation telemetry,
	- scaffold a new scene file pre-filled with defaults.`,
}

// Execute adds all child commands to the root command and runs it. This is
// called by main.main(), once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
