package main

import "prefixctl/cmd"

func main() {
	cmd.Execute()
}
