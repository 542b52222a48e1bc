package main

import "github.com/ryo246912/gh-pulls/internal/cli"

func main() {
	cli.Execute()
}
