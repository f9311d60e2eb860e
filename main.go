package main

import "park-pulse/cmd"

func main() {
	cmd.Execute()
}
