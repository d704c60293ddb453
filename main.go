/*
Copyright © 2025 openfreight
*/
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/openfreight/docintel/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
}
