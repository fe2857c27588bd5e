package main

import (
	"context"

	"github.com/scott-cotton/cli"
	_ "github.com/signadot/jsonpatch/xop/exprop"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
