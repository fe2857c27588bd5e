package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/jsonpatch/encode"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode output with color'"`
	WireOut bool `cli:"name=wire desc='output in compact format'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *encode.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**encode.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) inFormat() encode.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if cfg.Y {
		return encode.YAMLFormat
	}
	return encode.JSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := encode.JSONFormat
	if cfg.Y {
		fmat = encode.YAMLFormat
	}
	if cfg.OutFormat != nil {
		fmat = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) && fmat.IsJSON() {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ApplyConfig struct {
	*MainConfig

	String     bool `cli:"name=s desc='patch arg as string'"`
	File       bool `cli:"name=f desc='patch arg as file'"`
	NoValidate bool `cli:"name=novalidate desc='apply without validating operations'"`
	Removed    bool `cli:"name=removed desc='also output removed values'"`

	Apply *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ValidateConfig struct {
	*MainConfig

	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Validate *cli.Command
}
