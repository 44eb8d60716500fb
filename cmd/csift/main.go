package main

import "github.com/csift/csift/internal/cli"

func main() {
	cli.Execute()
}
