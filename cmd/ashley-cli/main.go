package main

import "github.com/jrlacey28/ashley-model-site/cmd/ashley-cli/cmd"

func main() {
	cmd.Execute()
}
