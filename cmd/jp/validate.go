package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonpatch"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires a patch argument", cli.ErrUsage)
	}
	patch, err := getPatchArg(cfg.MainConfig, cc, args[0], cfg.String, cfg.File)
	if err != nil {
		return err
	}
	files := args[1:]
	if len(files) == 0 {
		if err := jsonpatch.ValidateSequence(patch, nil, nil); err != nil {
			fmt.Fprintf(cc.Out, "invalid: %v\n", err)
			return cli.ExitCodeErr(1)
		}
		fmt.Fprintf(cc.Out, "valid\n")
		return nil
	}
	for _, file := range files {
		doc, err := getDocFile(cfg.MainConfig, cc, file)
		if err != nil {
			return err
		}
		if err := jsonpatch.ValidateSequence(patch, doc, nil); err != nil {
			fmt.Fprintf(cc.Out, "%s invalid: %v\n", file, err)
			return cli.ExitCodeErr(1)
		}
		fmt.Fprintf(cc.Out, "%s valid\n", file)
	}
	return nil
}
