package main

import "github.com/philipparndt/piewheel/cmd"

func main() {
	cmd.Execute()
}
