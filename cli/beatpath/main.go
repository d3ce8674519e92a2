package main

import (
	"os"

	beatpathcmder "github.com/papercomputeco/beatpath/cmd/beatpath"
)

func main() {
	cmd := beatpathcmder.NewBeatpathCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
