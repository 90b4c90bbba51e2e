package main

import "github.com/kasuboski/marquee/cmd"

func main() {
	cmd.Execute()
}
