package main

import (
	"fmt"

	"lever/cmd"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(fmt.Sprintf("%s-%s", version, commit))
}
