package main

import (
	"os"

	"github.com/oneiriclabs/mnemo/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
