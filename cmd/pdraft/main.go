package main

import (
	"github.com/openpd/pdraft/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
