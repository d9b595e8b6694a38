package all

import (
	_ "github.com/bornholm/solite-docs/pkg/source/cached"
	_ "github.com/bornholm/solite-docs/pkg/source/local"
	_ "github.com/bornholm/solite-docs/pkg/source/s3"
)
