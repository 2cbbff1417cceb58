package main

import "github.com/MyCarrier-DevOps/go-rebaseplan/cmd"

func main() {
	cmd.Execute()
}
