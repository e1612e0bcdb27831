package main

import (
	"os"

	"simpleblog/service"
)

func main() {
	os.Exit(service.Execute())
}
