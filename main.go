package main

import "plan-tracker.com/plan-tracker/cmd"

func main() {
	cmd.Execute()
}
