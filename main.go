package main

import (
	"os"

	"github.com/tanpawarit/Chative-Voice-Ordering/cmd"
	_ "github.com/tanpawarit/Chative-Voice-Ordering/pkg/logger/autoload"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
