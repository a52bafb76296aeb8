package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/madinah-companion/internal/cli"
	"github.com/mrlokans/madinah-companion/internal/config"
	"github.com/mrlokans/madinah-companion/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "books":
		cmd = cli.NewBooksCommand()
	case "lessons":
		cmd = cli.NewLessonsCommand()
	case "vocabulary":
		cmd = cli.NewVocabularyCommand()
	case "prefs":
		cmd = cli.NewPrefsCommand()

	case "version":
		fmt.Printf("%s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve        Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  books        List the textbooks\n")
	fmt.Fprintf(os.Stderr, "  lessons      List the lessons of a book or show one lesson\n")
	fmt.Fprintf(os.Stderr, "  vocabulary   List vocabulary for all books, a book or a lesson\n")
	fmt.Fprintf(os.Stderr, "  prefs        Show or change stored preferences\n")
	fmt.Fprintf(os.Stderr, "  version      Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
