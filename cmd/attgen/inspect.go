package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/attgen/internal/record"
	"github.com/san-kum/attgen/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func printField(label, value string) {
	fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := cfg.OutDir
	if len(args) > 0 {
		path = args[0]
	}

	fi, err := os.Stat(path)
	if err != nil {
		return err
	}

	var (
		records []record.Record
		files   int
		size    int64
	)
	if fi.IsDir() {
		rounds, err := storage.New(path, cfg.Extension, cfg.CompressionLevel).List()
		if err != nil {
			return err
		}
		for _, r := range rounds {
			recs, err := record.DecodeFile(r.Path)
			if err != nil {
				return err
			}
			records = append(records, recs...)
			size += r.Bytes
		}
		files = len(rounds)
	} else {
		records, err = record.DecodeFile(path)
		if err != nil {
			return err
		}
		files, size = 1, fi.Size()
	}

	fmt.Println(headerStyle.Render(filepath.Clean(path)))
	printField("files", humanize.Comma(int64(files)))
	printField("size", humanize.Bytes(uint64(size)))
	printField("records", humanize.Comma(int64(len(records))))
	if len(records) == 0 {
		fmt.Println(warnStyle.Render("no records"))
		return nil
	}

	s := record.Summarize(records)
	printField("mean", fmt.Sprintf("%.3fs", s.Mean))
	printField("min", fmt.Sprintf("%.3fs", s.Min))
	printField("max", fmt.Sprintf("%.3fs", s.Max))
	printField("simulated", fmt.Sprintf("%.2fh", s.Mean*float64(s.Count)/3600))

	hist := record.Histogram(records, 60, float64(cfg.StepCapSeconds))
	fmt.Println()
	fmt.Println(asciigraph.Plot(hist,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("convergence time, 0-%gs", cfg.StepCapSeconds)),
	))
	return nil
}
