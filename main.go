// Copyright © 2024 The libadalang-go authors

package main

import "github.com/Pateldisolution/libadalang/cmd"

func main() {
	cmd.Execute()
}
