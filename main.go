package main

import (
	"fmt"
	"os"
	"strings"

	"blogue/cli"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogue version %s\n", cliVersion)
	default:
		cli.HandleCommand(os.Args[1:])
	}
}

func printHelp() {
	helpText := `Usage: blogue <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve                          Run the blog service.
  init | clean | backup | restore <file>
                                 Manage the Badger database.
  migrate <posts.json>           Import posts from a legacy flat file.
`
	fmt.Println(helpText)
}
