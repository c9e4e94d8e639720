package main

import "github.com/forPelevin/vidsub/internal/cli"

func main() {
	cli.Main()
}
