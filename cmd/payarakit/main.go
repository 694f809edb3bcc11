package main

import "payarakit/internal/cli"

func main() {
	cli.Execute()
}
