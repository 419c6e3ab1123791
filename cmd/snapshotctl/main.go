package main

import (
	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/cmd"
)

func main() {
	cmd.Execute()
}
