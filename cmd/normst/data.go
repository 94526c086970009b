package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fractalqb/normst"
)

func dataFormat(pattern string) (normst.Format, error) {
	if rootCmd.format == "" {
		return normst.FormatOf(pattern), nil
	}
	for f := normst.FormatText; f <= normst.FormatYAML; f++ {
		if f.String() == rootCmd.format {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown format '%s'", rootCmd.format)
}

func loadPattern() (normst.Data, error) {
	if rootCmd.pattern == "" {
		return normst.Data{}, fmt.Errorf("no pattern file")
	}
	f, err := dataFormat(rootCmd.pattern)
	if err != nil {
		return normst.Data{}, err
	}
	raw, err := os.ReadFile(rootCmd.pattern)
	if err != nil {
		return normst.Data{}, err
	}
	return normst.ParseData(f, raw)
}

func readActual(f normst.Format, rd io.Reader) (normst.Data, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return normst.Data{}, err
	}
	return normst.ParseData(f, raw)
}

func readActualFile(f normst.Format, name string) (normst.Data, error) {
	rd, err := os.Open(name)
	if err != nil {
		return normst.Data{}, err
	}
	defer rd.Close()
	return readActual(f, rd)
}

// matches reports if normalized data equals its pattern.
func matches(norm, pattern normst.Data) bool {
	if nv, ok := norm.Value(); ok {
		pv, ok := pattern.Value()
		return ok && normst.Equal(nv, pv)
	}
	nt, nok := norm.Render()
	pt, pok := pattern.Render()
	if !nok || !pok {
		return string(norm.Bytes()) == string(pattern.Bytes())
	}
	return nt == pt
}
