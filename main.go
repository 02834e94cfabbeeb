package main

import "github.com/korrigangames/bspforge/cmd"

func main() {
	cmd.Execute()
}
