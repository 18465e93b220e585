// Package main is the entry point of the pagingsim command.
package main

import "github.com/sarchlab/pagingsim/pagingsim/cmd"

func main() {
	cmd.Execute()
}
