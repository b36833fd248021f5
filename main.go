package main

import "github.com/quantpulse/riskscore/cmd"

func main() {
	cmd.Execute()
}
