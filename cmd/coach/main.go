// Command coach runs the trainer API.
//
//	@title						Coach API
//	@version					1.0
//	@description				Workout templates, clients and progress logs for personal trainers.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
