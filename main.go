package main

import (
	"log"
	"os"

	"github.com/tessio/llm-pdf-reader/internal/process"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "llm-pdf-reader",
		Usage: "extract and OCR document text into chunked JSON for LLM agents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file (missing file means defaults)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "read",
				Usage:     "extract text from PDF or HTML files",
				ArgsUsage: "[files...]",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "pages",
						Usage: "page range, e.g. \"1,3,5-10,-1\" (-1 is the last page)",
					},
				),
				Action: process.ReadAction,
			},
			{
				Name:      "ocr",
				Usage:     "recognize text on rendered PDF pages",
				ArgsUsage: "[files...]",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "pages",
						Usage: "page range, e.g. \"1,3,5-10,-1\" (-1 is the last page)",
					},
					&cli.StringFlag{
						Name:  "languages",
						Usage: "comma-separated Tesseract language codes, e.g. \"eng,deu\"",
					},
					&cli.IntFlag{
						Name:  "dpi",
						Usage: "render resolution for OCR",
					},
					&cli.BoolFlag{
						Name:  "accelerator",
						Usage: "ask the OCR engine to use hardware acceleration if available",
					},
				),
				Action: process.OCRAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "files",
			Usage: "comma-separated file paths (alternative to positional arguments)",
		},
		&cli.IntFlag{
			Name:  "chunk-size",
			Usage: "maximum chunk length in characters",
		},
		&cli.IntFlag{
			Name:  "chunk-overlap",
			Usage: "characters repeated between adjacent chunks",
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "skip the cache read and reprocess",
		},
	}
}
