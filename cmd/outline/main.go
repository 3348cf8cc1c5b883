package main

import "github.com/dgallion1/outlinetree/internal/cli"

func main() {
	cli.Execute()
}
