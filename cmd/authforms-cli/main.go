package main

import "github.com/nfrund/authforms/cmd/authforms-cli/cmd"

func main() {
	cmd.Execute()
}
