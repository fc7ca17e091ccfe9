package main

import "panothumb/cmd"

func main() {
	cmd.Execute()
}
