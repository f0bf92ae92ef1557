package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sbomgrader/sbomgrader"
	"github.com/sbomgrader/sbomgrader/cmd/sbomgrader/commands"
	"github.com/sbomgrader/sbomgrader/internal/mcpserver"
)

// validCommands lists all valid command names for typo suggestions.
var validCommands = []string{"grade", "convert", "mcp", "version", "help"}

// levenshteinDistance calculates the minimum edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range len(b) + 1 {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

// suggestCommand returns the closest matching command if the edit distance is <= 2.
func suggestCommand(input string) string {
	var bestMatch string
	bestDistance := 3

	for _, cmd := range validCommands {
		dist := levenshteinDistance(input, cmd)
		if dist < bestDistance {
			bestDistance = dist
			bestMatch = cmd
		}
	}

	return bestMatch
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("sbomgrader %s\n", sbomgrader.Version())
		fmt.Printf("commit: %s\n", sbomgrader.Commit())
		fmt.Printf("built: %s\n", sbomgrader.BuildTime())
		fmt.Printf("go: %s\n", sbomgrader.GoVersion())
	case "help", "-h", "--help":
		printUsage()
	case "grade":
		if err := commands.HandleGrade(os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := commands.HandleConvert(os.Args[2:]); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := mcpserver.Run(ctx); err != nil {
			commands.Writef(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean: %s?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sbomgrader - SBOM grading and translation tools

Usage:
  sbomgrader <command> [options]

Commands:
  grade       Grade an SBOM document against a cookbook
  convert     Convert an SBOM document between SPDX and CycloneDX
  mcp         Start an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  sbomgrader grade sbom.json
  sbomgrader grade --cookbook default,strict --decisive strict sbom.json
  cat sbom.json | sbomgrader grade -q -
  sbomgrader convert -map spdx23-cdx16 -o sbom.cdx.json sbom.spdx.json

Run 'sbomgrader <command> -h' for more information on a command.`)
}
