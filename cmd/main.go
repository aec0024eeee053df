// Command burnoutd is the entry point for the burnout detector. All
// behavior lives behind subcommands: serve, analyze, and mock.
package main

import "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/cli"

func main() {
	cli.Execute()
}
