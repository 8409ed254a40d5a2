package main

import "github.com/terra-deployer/deployer/cmd"

func main() {
	cmd.Execute()
}
