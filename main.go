package main

import "github.com/theirongolddev/gigfin/cmd"

func main() {
	cmd.Execute()
}
