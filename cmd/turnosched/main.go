package main

import "github.com/example/turno-scheduler/cmd"

func main() {
	cmd.Execute()
}
