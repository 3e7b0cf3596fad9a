package main

import "github.com/forPelevin/repurpose/internal/cli"

func main() {
	cli.Main()
}
