package main

import (
	"log"
	"os"

	"github.com/Trinoooo/scribble/cli"
)

func main() {
	wrapper := cli.NewWrapper()
	if err := wrapper.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}
