package main

import "promptpack/cmd"

func main() {
	cmd.Execute()
}
