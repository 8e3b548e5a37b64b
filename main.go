package main

import (
	"os"

	"github.com/selimozcann/doicheck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
