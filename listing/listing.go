// Package listing writes assembled programs.
package listing

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/asmkit/asm"
	"github.com/ezrec/asmkit/internal"
	"github.com/ezrec/asmkit/translate"
)

var f = translate.From

var (
	ErrFormatUnknown = errors.New(f("listing format unknown"))
	ErrWordCount     = errors.New(f("word count does not match program"))
)

// Format is a listing output format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_HEX  = Format(0) // hex
	FORMAT_BIN  = Format(1) // bin
	FORMAT_YAML = Format(2) // yaml
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (format Format, err error) {
	for candidate := range Format(len(_Format_index) - 1) {
		if candidate.String() == name {
			format = candidate
			return
		}
	}

	err = fmt.Errorf("%w: %q", ErrFormatUnknown, name)
	return
}

// Word is a machine word, written in hexadecimal.
type Word uint64

func (word Word) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!int",
		Value: fmt.Sprintf("0x%016x", uint64(word)),
	}, nil
}

// Entry is an assembled line.
type Entry struct {
	LineNo int    `yaml:"line"`
	Source string `yaml:"source"`
	Word   Word   `yaml:"word"`
}

// Entries pairs the lines of a program with their assembled words.
func Entries(prog *asm.Program, words []uint64) (entries []Entry, err error) {
	if prog.Len() != len(words) {
		err = fmt.Errorf("%w: %v lines, %v words", ErrWordCount, prog.Len(), len(words))
		return
	}

	entries = make([]Entry, 0, len(words))
	for line, word := range internal.IterSeqZip(slices.Values(prog.Lines), slices.Values(words)) {
		entries = append(entries, Entry{LineNo: line.LineNo, Source: line.Text, Word: Word(word)})
	}

	return
}

// Write writes an assembled program in the given format.
func Write(output io.Writer, format Format, prog *asm.Program, words []uint64) (err error) {
	entries, err := Entries(prog, words)
	if err != nil {
		return
	}

	switch format {
	case FORMAT_HEX:
		err = writeHex(output, entries)
	case FORMAT_BIN:
		err = binary.Write(output, binary.BigEndian, words)
	case FORMAT_YAML:
		enc := yaml.NewEncoder(output)
		enc.SetIndent(2)
		err = enc.Encode(entries)
		if err == nil {
			err = enc.Close()
		}
	default:
		err = fmt.Errorf("%w: %v", ErrFormatUnknown, format)
	}

	return
}

// writeHex writes one word per line, followed by its source line.
func writeHex(output io.Writer, entries []Entry) (err error) {
	w := bufio.NewWriter(output)
	for _, entry := range entries {
		_, err = fmt.Fprintf(w, "%016x // %d: %v\n", uint64(entry.Word), entry.LineNo, entry.Source)
		if err != nil {
			return
		}
	}

	return w.Flush()
}
