package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/qri-io/mapmatcher/internal/cmd"
	"github.com/qri-io/mapmatcher/internal/log"
)

func main() {
	if err := cmd.Execute(os.Args[1:], os.Stdout); err != nil {
		// the report has already been written
		if errors.Is(err, cmd.ErrMismatch) {
			os.Exit(1)
		}
		log.Errorf("%s", err)
		os.Exit(2)
	}
}
