package main

import "github.com/mvp-joe/fndoc/internal/cli"

func main() {
	cli.Execute()
}
