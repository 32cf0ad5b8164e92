package main

import "github.com/zjrosen/reckon/cmd"

func main() {
	cmd.Execute()
}
