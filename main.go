package main

import "github.com/Tiliavir/weektracker/cmd"

func main() {
	cmd.Execute()
}
