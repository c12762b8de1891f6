package main

import "github.com/Tarnadas/wasm-pack/cmd"

func main() {
	cmd.Execute()
}
