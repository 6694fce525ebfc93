// Command webchat is a terminal client for a web chatbot backend.
package main

import "github.com/diogo/webchat/internal/commands"

func main() {
	commands.Execute()
}
