package main

import "github.com/sabhz/scribe/cmd"

func main() {
	cmd.Execute()
}
