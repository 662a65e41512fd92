package main

import "github.com/use-agent/leekduck/cmd/leekduck/cmd"

func main() {
	cmd.Execute()
}
