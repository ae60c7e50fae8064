package main

import "github.com/Tiliavir/toggl-audit/cmd"

func main() {
	cmd.Execute()
}
