package main

import (
	"fmt"
	"os"

	"nyayalens-backend/cmd/nyaya-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("NYAYA_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the case lookup service in the environment variable NYAYA_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
