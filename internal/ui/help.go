package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tbeaumont/gestured/internal/utils"
)

// PrintUsage displays the styled help/usage text
func PrintUsage(version string) {
	// Title banner
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
	fmt.Println(Muted("Mouse gesture daemon: bind shapes, clicks and screen edges to commands"))
	fmt.Println()

	// Usage section
	printSection("Usage", []string{
		utils.ExecutableName() + " [flags]                Run the gesture daemon",
		utils.ExecutableName() + " trace                  Print classified events without running commands",
		utils.ExecutableName() + " record                 Record a gesture and save it as a binding",
		utils.ExecutableName() + " list-bindings          Show the configured bindings",
		utils.ExecutableName() + " list-devices           List attached pointing devices",
		utils.ExecutableName() + " set-shape-button       Choose which button starts shape gestures",
		utils.ExecutableName() + " open-config            Open the config file in the default editor",
		utils.ExecutableName() + " help                   Show this help message",
	})

	// Flags section
	printSection("Flags", []string{
		"-config string    Path to configuration file (default \"~/.config/gestured.yaml\")",
		"-no-listen        Poll the cursor instead of consuming motion events",
		"-verbose          Enable verbose logging",
		"-version          Print version and exit",
	})

	// Commands section
	printCommandSection()

	// Examples section
	printExamplesSection()
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printCommandSection() {
	fmt.Println(Bold("Commands"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	fmt.Printf("  %s\n", cmdStyle.Render("trace"))
	fmt.Printf("      Print every classified event and, for gestures, write the trace\n")
	fmt.Printf("      as a PNG next to the config file. No commands are executed.\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("record"))
	fmt.Printf("      Capture the next gesture drawn with the shape button, then prompt\n")
	fmt.Printf("      for a comment and command and append the binding to the config.\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("list-bindings"))
	fmt.Printf("      Show every binding in the config file with its trigger and command\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("set-shape-button"))
	fmt.Printf("      Pick the mouse button that starts shape gestures and save it\n")
	fmt.Println()
}

func printExamplesSection() {
	fmt.Println(Bold("Examples"))

	examples := []struct {
		cmd  string
		desc string
	}{
		{utils.ExecutableName(), "Run with the default config"},
		{utils.ExecutableName() + " -config my.yaml", "Run with a custom config file"},
		{utils.ExecutableName() + " trace", "Inspect events while drawing gestures"},
		{utils.ExecutableName() + " record", "Add a binding by drawing it"},
		{utils.ExecutableName() + " set-shape-button", "Interactive shape-button selection"},
	}

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		if len(ex.cmd) > maxLen {
			maxLen = len(ex.cmd)
		}
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.cmd), padding, Muted(ex.desc))
	}
	fmt.Println()
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

// PrintError displays a styled error message
func PrintError(message string) {
	fmt.Println(Error(message))
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}
