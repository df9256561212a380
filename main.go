/*
Copyright © 2025 tranvuminh
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tranvuminh/papermind-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional; API keys may come from the real environment.
	_ = godotenv.Load()
}
