package main

import "yachtdrop-backend/cmd/catalog/cmd"

func main() {
	cmd.Execute()
}
