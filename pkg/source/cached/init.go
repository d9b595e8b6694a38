package cached

import (
	"time"

	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

const (
	Type      source.Type = "cached"
	TypeAlias source.Type = "cacheonread"
)

func init() {
	source.Register(Type, CreateSourceFromOptions)
	source.Register(TypeAlias, CreateSourceFromOptions)
}

type Options struct {
	TTL     time.Duration `mapstructure:"ttl"`
	Backend SourceOptions `mapstructure:"backend"`
}

type SourceOptions struct {
	Type    source.Type `mapstructure:"type"`
	Options any         `mapstructure:"options"`
}

func CreateSourceFromOptions(options any) (source.Source, error) {
	opts := Options{
		TTL: time.Minute,
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:   nil,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(mapstructure.StringToTimeDurationHookFunc()),
		Result:     &opts,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' source options decoder", Type)
	}

	if err := decoder.Decode(options); err != nil {
		return nil, errors.Wrapf(err, "could not parse '%s' source options", Type)
	}

	backend, err := source.New(opts.Backend.Type, opts.Backend.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create backend source '%s'", opts.Backend.Type)
	}

	return NewSource(backend, opts.TTL), nil
}
