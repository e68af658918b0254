package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/binzume/gltfscene/config"
	"github.com/binzume/gltfscene/gltfutil"
	"github.com/binzume/gltfscene/importer"
	"github.com/binzume/gltfscene/logger"
	"github.com/binzume/gltfscene/scene"
	"go.uber.org/zap"
)

func run(cfg *config.Config, input, output string) error {
	file, err := gltfutil.Load(input)
	if err != nil {
		return err
	}

	opts, err := cfg.ImportOptions(logger.Named("importer"))
	if err != nil {
		return err
	}
	opts.Interpolations = file.Interpolations
	data := scene.NewData()
	var res *importer.Result
	if cfg.Scene >= 0 {
		res, err = importer.ImportScene(data, file.Doc, cfg.Scene, opts)
	} else {
		res, err = importer.Import(data, file.Doc, opts)
	}
	if err != nil {
		return err
	}
	data.SetDefaultScene(res.Scene)
	logger.Info("imported",
		zap.String("scene", res.Scene.Name),
		zap.Int("objects", len(res.Scene.Objects)),
		zap.Int("actions", len(res.Actions)))

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		logger.Sugar.Infof("writing %s", output)
	}
	return data.WriteYAML(w)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input.glb [output.yaml]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return
	}
	input := flag.Arg(0)
	output := flag.Arg(1)

	cfg, err := config.Load(flags.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.ApplyFlags(flags)
	if flags.SaveConfig != "" {
		if err := cfg.Save(flags.SaveConfig); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, input, output); err != nil {
		logger.Error("import failed", zap.String("input", input), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
