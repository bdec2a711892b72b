package main

import "whatsappmcp/internal/cli"

func main() {
	cli.Execute()
}
