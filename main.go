package main

import (
	"os"

	"github.com/qian20010413/xinyunxuexi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
