package main

import "pytoy/src/cmd"

func main() {
	cmd.Execute()
}
