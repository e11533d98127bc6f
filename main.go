package main

import "github.com/rcardenasv/brakepad-catalog/cmd"

func main() {
	cmd.Execute()
}
