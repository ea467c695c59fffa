package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "listing.schema.json"

// Validator は募集ドキュメントをJSON Schemaで検証する。
// コンパイル済みスキーマは読み取り専用のため、複数goroutineから利用できる。
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator は埋め込みのスキーマをコンパイルしてValidatorを生成する。
func NewValidator() (*Validator, error) {
	raw, err := seedFS.ReadFile("seed/" + schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to read listing schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add listing schema: %w", err)
	}
	schema, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile listing schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate は1件分の募集ドキュメントを検証する。
func (v *Validator) Validate(doc []byte) error {
	var value interface{}
	if err := json.Unmarshal(doc, &value); err != nil {
		return fmt.Errorf("listing document is not valid JSON: %w", err)
	}
	if err := v.schema.Validate(value); err != nil {
		return fmt.Errorf("listing schema validation failed: %w", err)
	}
	return nil
}

// DecodeRecord はドキュメントをスキーマ検証したうえでRecordに復元する。
func (v *Validator) DecodeRecord(doc []byte) (Record, error) {
	if err := v.Validate(doc); err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode listing document: %w", err)
	}
	return rec, nil
}
