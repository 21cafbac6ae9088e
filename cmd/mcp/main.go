package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/azure-optimizer/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	s := server.NewMCPServer(
		"azure-optimizer-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterOptimizerTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
