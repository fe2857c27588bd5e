package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonpatch"
	"github.com/signadot/jsonpatch/encode"
)

func getDocFile(cfg *MainConfig, cc *cli.Context, path string) (any, error) {
	d, err := readArg(cc, path)
	if err != nil {
		return nil, err
	}
	return encode.Document(d, cfg.inFormat())
}

func getPatchArg(cfg *MainConfig, cc *cli.Context, arg string, asString, asFile bool) (jsonpatch.Patch, error) {
	if asString && asFile {
		return nil, fmt.Errorf("%w: at most one of -s -f", cli.ErrUsage)
	}
	if asString {
		return encode.PatchOf([]byte(arg), cfg.inFormat())
	}
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, err
	}
	return encode.PatchOf(d, cfg.inFormat())
}

func readArg(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}
