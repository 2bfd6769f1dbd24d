package main

import "github.com/KostasZigo/gitlite/cmd"

func main() {
	cmd.Execute()
}
