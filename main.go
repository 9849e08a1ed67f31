package main

import "github.com/audi70r/gitrewind/cmd"

func main() {
	cmd.Run()
}
