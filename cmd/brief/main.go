package main

import (
	"github.com/briteco/brief/cmd/handlers"
	"github.com/briteco/brief/internal/logger"
)

func main() {
	logger.Init() // Initialize the logger
	handlers.Execute()
}
