package main

import "github.com/hawker-labs/hawker/cmd"

func main() {
	cmd.Execute()
}
