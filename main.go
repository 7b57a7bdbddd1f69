package main

import "github.com/nerdmakr/claude-notify/cmd/claude-notify/commands"

func main() {
	commands.Execute()
}
