package main

import "lawFirmWebsite/internal/commands"

func main() {
	commands.Execute()
}
