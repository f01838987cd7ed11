package main

import "github.com/theblobinthesky/occlcull/cmd/occlcull/cmd"

func main() {
	cmd.Execute()
}
