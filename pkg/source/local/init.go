package local

import (
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const Type source.Type = "local"

func init() {
	source.Register(Type, CreateSourceFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir"`
}

func CreateSourceFromOptions(options any) (source.Source, error) {
	opts := Options{}

	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' source options", Type)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' source: option 'dir' is required", Type)
	}

	return NewSource(opts.Dir), nil
}
