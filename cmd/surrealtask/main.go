package main

import (
	"context"
	"log"
	"os"

	"github.com/surrealdb/surrealtask/pkg/surrealtask"
)

func main() {
	// Execute the application with command line arguments
	// Use context.Background() for the main entry point
	if err := surrealtask.Main(context.Background(), os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
