package main

import "github.com/crimson-sun/loganalyze/internal/cli"

func main() {
	cli.Execute()
}
