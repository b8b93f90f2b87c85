package main

import "github.com/papapumpkin/triage/cmd"

func main() {
	cmd.Execute()
}
