package main

import (
	"github.com/tapilab/featscale/pkg/cli"
)

func main() {
	cli.Execute()
}
