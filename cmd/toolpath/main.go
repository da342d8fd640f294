// seehuhn.de/go/toolpath - toolpath generation for 3D printers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command toolpath converts a YAML job file into G-code.
//
// Usage:
//
//	toolpath [-settings printer.ini] [-sort full|z|none] [-o out.gcode] [-v] job.yaml
//
// The settings file contains "key=value" lines.  Settings in the job file
// take precedence over the settings file, which takes precedence over the
// built-in printer profile.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/toolpath"
	"seehuhn.de/go/toolpath/job"
	"seehuhn.de/go/toolpath/layer"
)

func main() {
	settings := flag.String("settings", "", "printer settings file")
	sortMode := flag.String("sort", "", "layer grouping: full, z or none")
	out := flag.String("o", "-", "output file")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] job.yaml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	toolpath.SetLogger(logger)

	if err := run(logger, flag.Arg(0), *settings, *sortMode, *out); err != nil {
		logger.Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, jobFile, settingsFile, sortMode, outFile string) error {
	j, err := job.Load(jobFile)
	if err != nil {
		return err
	}

	var base []string
	if settingsFile != "" {
		base, err = readLines(settingsFile)
		if err != nil {
			return err
		}
	}
	cfg, err := j.Config(base)
	if err != nil {
		return err
	}

	mode, err := j.Mode()
	if err != nil {
		return err
	}
	if sortMode != "" {
		mode, err = layer.ParseMode(sortMode)
		if err != nil {
			return err
		}
	}

	items, err := j.Items()
	if err != nil {
		return err
	}

	res, err := toolpath.Generate(cfg, items, &toolpath.Options{Mode: mode})
	if err != nil {
		return err
	}
	for _, msg := range res.Report.Warnings {
		logger.Warn(msg)
	}
	for _, msg := range res.Report.Errors {
		logger.Error(msg)
	}

	var w io.Writer = os.Stdout
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if _, err := res.Program.WriteTo(w); err != nil {
		return err
	}
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		return f.Close()
	}
	return nil
}

func readLines(fname string) ([]string, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
