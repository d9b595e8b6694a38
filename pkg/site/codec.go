package site

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatYAML      Format = "yaml"
	FormatJSON      Format = "json"
	FormatVitePress Format = "vitepress"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

func Formats() []Format {
	return []Format{FormatYAML, FormatJSON, FormatVitePress}
}

// FormatFromPath infers the decoding format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Wrapf(ErrUnsupportedFormat, "could not infer format of '%s'", path)
	}
}

func LoadFile(path string) (*Site, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer file.Close()

	site := &Site{}

	if err := Decode(file, format, site); err != nil {
		return nil, errors.Wrapf(err, "could not decode site file '%s'", path)
	}

	return site, nil
}

// Decode reads a site object. Unknown keys are rejected.
func Decode(r io.Reader, format Format, site *Site) error {
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(r, yaml.DisallowUnknownField())

		if err := decoder.Decode(site); err != nil {
			return errors.WithStack(err)
		}

	case FormatJSON:
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(site); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Wrapf(ErrUnsupportedFormat, "could not decode format '%s'", format)
	}

	*site = *site.normalized()

	return nil
}

const vitePressTemplate = `import { defineConfig } from 'vitepress'

export default defineConfig(%s)
`

func Encode(w io.Writer, format Format, site *Site) error {
	site = site.normalized()

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		if err := encoder.Encode(site); err != nil {
			return errors.WithStack(err)
		}

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(site); err != nil {
			return errors.WithStack(err)
		}

	case FormatVitePress:
		var buff bytes.Buffer

		encoder := json.NewEncoder(&buff)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(site); err != nil {
			return errors.WithStack(err)
		}

		if _, err := fmt.Fprintf(w, vitePressTemplate, strings.TrimSpace(buff.String())); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Wrapf(ErrUnsupportedFormat, "could not encode format '%s'", format)
	}

	return nil
}
