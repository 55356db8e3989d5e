package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"quizbank/internal/jsondoc"
	"quizbank/internal/question"
)

//go:embed bank.schema.json
var bankSchemaJSON string

const bankSchemaURL = "quizbank://bank.schema.json"

var bankSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(bankSchemaURL, strings.NewReader(bankSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add bank schema: %w", err)
	}
	schema, err := compiler.Compile(bankSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	return schema, nil
})

// DecodeBank parses and schema-checks a bank document. Any failure is
// reported as a *CorruptError naming source.
func DecodeBank(source string, data []byte) (question.Bank, error) {
	schema, err := bankSchema()
	if err != nil {
		return question.Bank{}, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var generic any
	if err := decoder.Decode(&generic); err != nil {
		return question.Bank{}, &CorruptError{Source: source, Err: fmt.Errorf("parse json: %w", err)}
	}
	if decoder.More() {
		return question.Bank{}, &CorruptError{Source: source, Err: fmt.Errorf("parse json: multiple documents are not supported")}
	}
	if err := schema.Validate(generic); err != nil {
		return question.Bank{}, &CorruptError{Source: source, Err: err}
	}
	var bank question.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return question.Bank{}, &CorruptError{Source: source, Err: fmt.Errorf("decode bank: %w", err)}
	}
	if bank.Questions == nil {
		bank.Questions = []question.Question{}
	}
	return bank, nil
}

// EncodeBank renders a bank the way it is stored on disk.
func EncodeBank(bank question.Bank) ([]byte, error) {
	if bank.Questions == nil {
		bank.Questions = []question.Question{}
	}
	return jsondoc.Encode(bank)
}
