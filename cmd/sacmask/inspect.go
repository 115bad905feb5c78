package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/sacmask/pkg/sac"
)

type inspectOutput struct {
	Source     string    `json:"source"`
	Magic      string    `json:"magic"`
	Flags      uint8     `json:"flags"`
	DataType   uint8     `json:"data_type"`
	ArrayCount uint8     `json:"array_count"`
	Reserved   uint8     `json:"reserved"`
	Length     uint32    `json:"length"`
	Width      uint32    `json:"width"`
	Height     uint32    `json:"height"`
	Bytes      int       `json:"bytes"`
	Stats      sac.Stats `json:"stats"`
}

func inspectCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print the header and value ranges of a SAC mask",
		ArgsUsage: "FILE|URL",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			src := cmd.Args().First()
			if src == "" {
				return cli.Exit("inspect: missing FILE or URL", 1)
			}
			doc, closeDoc, err := openDocument(ctx, src)
			if err != nil {
				return err
			}
			defer func() { _ = closeDoc() }()

			h := doc.Header
			out := inspectOutput{
				Source:     src,
				Magic:      string(h.Magic[:]),
				Flags:      h.Flags,
				DataType:   h.DataType,
				ArrayCount: h.ArrayCount,
				Reserved:   h.Reserved,
				Length:     h.LengthA,
				Width:      h.Width,
				Height:     h.Height,
				Bytes:      len(doc.Bytes()),
				Stats:      doc.Stats(),
			}

			if asJSON {
				b, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(os.Stdout, string(b))
				return err
			}
			printInspect(out)
			return nil
		},
	}
}

func printInspect(o inspectOutput) {
	fmt.Printf("source:      %s\n", o.Source)
	fmt.Printf("magic:       %s\n", o.Magic)
	fmt.Printf("flags:       0x%02x\n", o.Flags)
	fmt.Printf("reserved:    0x%02x\n", o.Reserved)
	fmt.Printf("elements:    %d per array\n", o.Length)
	if o.Width != 0 && o.Height != 0 {
		fmt.Printf("dimensions:  %d x %d\n", o.Width, o.Height)
	} else {
		fmt.Printf("dimensions:  unspecified\n")
	}
	fmt.Printf("bytes:       %d\n", o.Bytes)
	fmt.Printf("array A:     [%d, %d]\n", o.Stats.MinA, o.Stats.MaxA)
	fmt.Printf("array B:     [%d, %d]\n", o.Stats.MinB, o.Stats.MaxB)
}
