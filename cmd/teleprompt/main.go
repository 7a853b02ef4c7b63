package main

import (
	"os"

	"github.com/sandeepkv93/teleprompt/internal/cli"
)

func main() {
	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
