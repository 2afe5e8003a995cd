package main

import (
	"github.com/exhibitkit/showroom/internal/cli"
)

func main() {
	cli.Execute()
}
