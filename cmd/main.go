package main

import (
	"github.com/va5ve/swift/pkg/cmd"
)

func main() {
	cmd.Execute()
}
