package document

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type decodeFunc func(data []byte, v any) error

var decoders = map[string]decodeFunc{
	".toml": toml.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

// decode unmarshals data into v using the decoder selected by the extension of path.
func decode(path string, data []byte, v any) error {
	dec, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedDocument, "unknown extension "+filepath.Ext(path)), "path", path)
	}
	if err := dec(data, v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDocumentParseFailed.Error()), "path", path)
	}
	return nil
}
