package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonpatch"
	"github.com/signadot/jsonpatch/encode"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: apply requires a patch argument", cli.ErrUsage)
	}
	patch, err := getPatchArg(cfg.MainConfig, cc, args[0], cfg.String, cfg.File)
	if err != nil {
		return err
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, file := range files {
		if err := applyFile(cfg, cc, patch, file); err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		if i < len(files)-1 {
			cc.Out.Write([]byte("\n---\n"))
		}
	}
	return nil
}

func applyFile(cfg *ApplyConfig, cc *cli.Context, patch jsonpatch.Patch, file string) error {
	doc, err := getDocFile(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	opts := []jsonpatch.Opt{}
	if !cfg.NoValidate {
		opts = append(opts, jsonpatch.WithValidation())
	}
	res, err := jsonpatch.ApplyPatch(doc, patch, opts...)
	if err != nil {
		return err
	}
	out := res.Document
	if cfg.Removed {
		removed := make([]any, 0, len(res.Results))
		for _, r := range res.Results {
			removed = append(removed, r.Removed)
		}
		out = map[string]any{"document": res.Document, "removed": removed}
	}
	if err := encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
