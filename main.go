package main

import "github.com/nextlevelbuilder/parkbot/cmd"

func main() {
	cmd.Execute()
}
