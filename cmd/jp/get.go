package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonpatch"
	"github.com/signadot/jsonpatch/encode"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a JSON pointer", cli.ErrUsage)
	}
	path := args[0]
	if path != "" && path[0] != '/' {
		return fmt.Errorf("%w: invalid pointer %q", cli.ErrUsage, path)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		doc, err := getDocFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		v, err := jsonpatch.GetValueByPointer(doc, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", file, path, err)
		}
		if err := encode.Encode(v, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		if i < len(files)-1 {
			cc.Out.Write([]byte("\n---\n"))
		}
	}
	return nil
}
