package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a scene file",
	Long: `Create a scene description file in YAML format, prefilled with a clip box
and two placeholder mesh entries (one occluder, one target).

If FILE is not provided, 'scene.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "scene.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path,
			fmt.Sprintf("file name %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user...")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}

		check(marshalYAMLFile(path, defaultSceneConfig()))
		fmt.Printf("scene description written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
