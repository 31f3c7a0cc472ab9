package main

import "shuttleboard/cmd"

func main() {
	cmd.Execute()
}
