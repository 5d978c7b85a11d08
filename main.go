/*
Copyright © 2025 tieubaoca
*/
package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/pdf-ask/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// .env is optional, the environment may already carry everything
	_ = godotenv.Load()
}
