package main

import "github.com/elC0mpa/azure-optimizer/cmd/azure-optimizer/commands"

func main() {
	commands.Execute()
}
