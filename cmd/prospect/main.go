package main

import (
	"fmt"
	"os"

	"github.com/pixil98/go-prospect/cmd/prospect/command"
)

func main() {
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
