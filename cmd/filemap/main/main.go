package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/filemap/cmd/filemap"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})

func main() {
	rootCmd := filemap.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
