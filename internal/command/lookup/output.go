package lookup

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bornholm/profilefinder/pkg/profile"
	"github.com/bytedance/sonic"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

func writeProfile(w io.Writer, p *profile.Profile, format string) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(p); err != nil {
			return errors.WithStack(err)
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

		return nil

	case FormatJSON:
		data, err := sonic.ConfigDefault.MarshalIndent(p, "", "  ")
		if err != nil {
			return errors.WithStack(err)
		}

		if _, err := w.Write(append(data, '\n')); err != nil {
			return errors.WithStack(err)
		}

		return nil

	default:
		return errors.Errorf("unknown output format '%s'", format)
	}
}

// outputFilename names the output file after the profile, falling back to
// the query when no name was extracted.
func outputFilename(p *profile.Profile, query string, format string) string {
	base := slug.Make(p.Name)
	if base == "" {
		base = slug.Make(query)
	}

	if base == "" {
		base = "profile"
	}

	return base + "." + format
}

func saveProfile(dir string, p *profile.Profile, query string, format string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.WithStack(err)
	}

	filename := filepath.Join(dir, outputFilename(p, query, format))

	file, err := os.Create(filename)
	if err != nil {
		return "", errors.WithStack(err)
	}

	defer file.Close()

	if err := writeProfile(file, p, format); err != nil {
		return "", errors.WithStack(err)
	}

	return filename, nil
}
