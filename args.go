package x3ftiff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConvertArgs is the parsed form of the convert command's positional
// arguments.
type ConvertArgs struct {
	Inputs    []string
	OutputDir string
	Format    OutputFormat
}

// formatTokens is the closed set recognized as a trailing format selector.
var formatTokens = map[string]bool{
	string(FormatTIFF): true,
	"tif":              true,
	string(FormatPSD):  true,
}

// ParseOutputFormat maps a selector token to an OutputFormat. Only TIFF has
// a writer behind it; any other selector is an explicit error rather than a
// silent fallback to the default.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "tiff", "tif":
		return FormatTIFF, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// ParseConvertArgs interprets the positional grammar
//
//	<input>... [output-directory] [format]
//
// Inputs either end in .x3f or name directories, which expand to the .x3f
// files under them. A trailing token from {tiff, tif, psd} that names
// nothing on disk is the format selector. After that, a trailing argument
// that is not an input is the output directory; it need not exist yet.
func ParseConvertArgs(args []string) (*ConvertArgs, error) {
	if len(args) == 0 {
		return nil, errors.New("missing required arguments")
	}
	out := &ConvertArgs{Format: FormatTIFF}
	rest := args

	if len(rest) >= 2 {
		last := rest[len(rest)-1]
		if formatTokens[strings.ToLower(last)] && !pathExists(last) {
			f, err := ParseOutputFormat(last)
			if err != nil {
				return nil, err
			}
			out.Format = f
			rest = rest[:len(rest)-1]
		}
	}
	if len(rest) >= 2 {
		last := rest[len(rest)-1]
		if !isX3FName(last) {
			out.OutputDir = filepath.Clean(last)
			rest = rest[:len(rest)-1]
		}
	}
	for _, a := range rest {
		info, err := os.Stat(a)
		switch {
		case err == nil && info.IsDir():
			found, err := expandDir(a)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no X3F files under %s", a)
			}
			out.Inputs = append(out.Inputs, found...)
		case isX3FName(a):
			out.Inputs = append(out.Inputs, a)
		default:
			return nil, fmt.Errorf("not an X3F file: %s", a)
		}
	}
	if len(out.Inputs) == 0 {
		return nil, errors.New("no input files")
	}
	return out, nil
}

// isX3FName matches the extension only; content sniffing happens at decode.
func isX3FName(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".x3f")
}

func pathExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// expandDir collects the .x3f files under dir, sorted for deterministic
// processing order.
func expandDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isX3FName(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
