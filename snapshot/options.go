package snapshot

import (
	"fmt"

	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/format"
	"github.com/arloliu/meshattr/internal/options"
)

// DefaultMaxRawLength is the largest decompressed body Decode accepts unless
// WithMaxRawLength says otherwise.
const DefaultMaxRawLength = 1 << 30 // 1GiB

type config struct {
	compression  format.CompressionType
	registry     *attribute.Registry
	maxRawLength uint32
}

// Option configures Encode and Decode.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression:  format.CompressionNone,
		maxRawLength: DefaultMaxRawLength,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression sets the codec applied to the body. The default is
// format.CompressionNone. Decode ignores it and uses the header.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *config) error {
		if !c.IsValid() {
			return fmt.Errorf("invalid snapshot compression: %s", c)
		}
		cfg.compression = c

		return nil
	})
}

// WithRegistry sets the registry resolving element types. Encode defaults
// to the registry of the encoded manager, Decode to attribute.DefaultRegistry().
func WithRegistry(r *attribute.Registry) Option {
	return options.New(func(cfg *config) error {
		if r == nil {
			return fmt.Errorf("snapshot registry must not be nil")
		}
		cfg.registry = r

		return nil
	})
}

// WithMaxRawLength bounds the decompressed body size Decode accepts. Larger
// snapshots fail with errs.ErrDecodedSizeLimit before any body buffer is
// allocated. Encode ignores it.
func WithMaxRawLength(n uint32) Option {
	return options.New(func(cfg *config) error {
		if n == 0 {
			return fmt.Errorf("snapshot raw length limit must be positive")
		}
		cfg.maxRawLength = n

		return nil
	})
}
