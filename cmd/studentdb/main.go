package main

import "github.com/leengari/studentdb/internal/cli"

func main() {
	cli.Execute()
}
