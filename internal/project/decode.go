package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rokujyushi/voicevox/internal/version"
)

// Decoded is a project file that passed migration, schema validation and
// the invariant checks.
type Decoded struct {
	Document *Document
	// Version is the version of the application that wrote the file.
	Version version.Version
	// Migrations names the migrations that were applied, in order.
	Migrations []string
}

// Decode turns the raw bytes of a project file into a validated Document.
// appVersion is the version of the running application; it must parse even
// though only the file's version decides which migrations run.
// Every failure is a *LoadError.
func Decode(data []byte, appVersion string) (*Decoded, error) {
	tree, err := decodeTree(data)
	if err != nil {
		return nil, err
	}

	rawVersion, ok := tree["appVersion"].(string)
	if !ok {
		return nil, &LoadError{Kind: KindVersion, Err: ErrMissingAppVersion}
	}
	fileVersion, err := version.Parse(rawVersion)
	if err != nil {
		return nil, &LoadError{Kind: KindVersion, Err: err}
	}
	if _, err := version.Parse(appVersion); err != nil {
		return nil, &LoadError{Kind: KindVersion, Err: err}
	}

	applied := Migrate(tree, fileVersion)

	if result := ValidateSchema(tree); !result.Valid {
		return nil, &LoadError{Kind: KindSchema, Err: result.Err()}
	}

	doc, err := fromTree(tree)
	if err != nil {
		return nil, &LoadError{Kind: KindSchema, Err: err}
	}

	if result := CheckInvariants(doc); !result.Valid {
		return nil, &LoadError{Kind: KindInvariant, Err: result.Err()}
	}

	return &Decoded{
		Document:   doc,
		Version:    fileVersion,
		Migrations: applied,
	}, nil
}

// decodeTree decodes JSON text into a generic tree. Files are UTF-8, with or
// without a byte order mark; a UTF-16 byte order mark selects UTF-16.
// Surrounding whitespace is ignored.
func decodeTree(data []byte) (map[string]any, error) {
	decoded, _, err := transform.Bytes(textDecoder(data), data)
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return nil, &LoadError{Kind: KindDecode, Err: ErrInvalidUTF8}
	}
	if err != nil {
		return nil, &LoadError{Kind: KindDecode, Err: err}
	}
	text := strings.TrimSpace(string(decoded))

	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &LoadError{Kind: KindDecode, Err: err}
	}

	tree, ok := raw.(map[string]any)
	if !ok {
		return nil, &LoadError{Kind: KindSchema, Err: ErrNotObject}
	}
	return tree, nil
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// textDecoder picks the transformer for data from its byte order mark.
// UTF-8 input is validated rather than repaired.
func textDecoder(data []byte) transform.Transformer {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	}
	return transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder())
}
