// Command geminichat is a terminal chat client for the Gemini API.
package main

import "github.com/diogo/geminichat/internal/commands"

func main() {
	commands.Execute()
}
