package main

import "github.com/naka-gawa/gitissues/cmd"

func main() {
	cmd.Execute()
}
