package main

import "github.com/dave-shawley/ged-work/cmd"

func main() {
	cmd.Execute()
}
