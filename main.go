package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"bdl-cms/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
