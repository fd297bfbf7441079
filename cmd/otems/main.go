package main

import "github.com/OpenTraceLab/OpenTraceEMS/cmd/otems/cmd"

func main() {
	cmd.Execute()
}
