package main

import "github.com/fraugster/parquet-meta/cmd/parquet-meta/internal/cmds"

func main() {
	cmds.Execute()
}
