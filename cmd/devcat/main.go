package main

import (
	"log"

	"github.com/MrSnakeDoc/devcat/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ devcat failed to start: %v", err)
	}
}
