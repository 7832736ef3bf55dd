package main

import "github.com/aussiebroadwan/amxprobe/cmd/probe/cmd"

func main() {
	cmd.Execute()
}
