package main

import "github.com/KaramelBytes/hotelscope/cmd"

func main() {
	cmd.Execute()
}
