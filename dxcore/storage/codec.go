/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dirpx.dev/dxbook/dxcore/errors"
	"dirpx.dev/dxbook/dxcore/model/addressbook"
	"gopkg.in/yaml.v3"
)

// Codec turns a Document into bytes and back.
type Codec interface {
	// Name is the format name used on the command line ("json", "yaml").
	Name() string
	Marshal(doc Document) ([]byte, error)
	// Unmarshal reports shape problems as *errors.UnmarshalError. Empty
	// input yields an empty Document.
	Unmarshal(data []byte) (Document, error)
}

// JSONCodec stores documents as indented JSON.
type JSONCodec struct{}

// YAMLCodec stores documents as YAML.
type YAMLCodec struct{}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
)

// Name returns "json".
func (JSONCodec) Name() string { return "json" }

// Marshal encodes doc as JSON.
func (JSONCodec) Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding address book: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes JSON. Empty input is an empty Document.
func (JSONCodec) Unmarshal(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, &errors.UnmarshalError{Type: "Document", Data: data, Reason: err.Error()}
	}
	return doc, nil
}

// Name returns "yaml".
func (YAMLCodec) Name() string { return "yaml" }

// Marshal encodes doc as YAML.
func (YAMLCodec) Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding address book: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding address book: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML. Empty input is an empty Document.
func (YAMLCodec) Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, &errors.UnmarshalError{Type: "Document", Data: data, Reason: err.Error()}
	}
	return doc, nil
}

// CodecFor picks a codec from the file extension. Anything other than
// .yaml or .yml is JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// CodecByName returns the codec for a format name.
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, &errors.ParseError{Type: "format", Value: name, Reason: "expected json or yaml"}
	}
}

// Export writes b to w in the given format.
func Export(w io.Writer, b *addressbook.AddressBook, codec Codec) error {
	data, err := codec.Marshal(Encode(b))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s export: %w", codec.Name(), err)
	}
	return nil
}
