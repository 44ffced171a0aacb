// Command scrimctl runs the results pipeline on OCR text offline and mints
// staff tokens for the admin API.
package main

import (
	"log"
	"os"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
