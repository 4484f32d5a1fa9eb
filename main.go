package main

import (
	"os"

	"github.com/lmsforge/lms-backend/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
