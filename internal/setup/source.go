package setup

import (
	"context"

	"github.com/bornholm/solite-docs/internal/config"
	"github.com/bornholm/solite-docs/pkg/source"
	"github.com/pkg/errors"

	_ "github.com/bornholm/solite-docs/pkg/source/all"
)

var NewSourceFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (source.Source, error) {
	var options any
	if conf.Source.Options != nil {
		options = conf.Source.Options.Data
	}

	src, err := source.New(source.Type(conf.Source.Type), options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create source '%s'", conf.Source.Type)
	}

	return src, nil
})
