package main

import "github.com/tasklist-app/tasklist/cmd"

func main() {
	cmd.Execute()
}
