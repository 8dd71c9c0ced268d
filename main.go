package main

import "github.com/Rorical/RoriSteer/cmd"

func main() {
	cmd.Execute()
}
