package main

import "github.com/aisummerdays/mcptour/cmd"

func main() {
	cmd.Execute()
}
