package main

import "weight-circle-backend/cmd"

func main() {
	cmd.Run()
}
