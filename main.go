package main

import "github.com/theirongolddev/revtrack/cmd"

func main() {
	cmd.Execute()
}
