package main

import "wordduel/internal/cli"

func main() {
	cli.Execute()
}
