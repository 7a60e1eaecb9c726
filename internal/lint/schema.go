package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const RuleFrontMatterSchema = "frontmatter/schema"

// schemaRule validates each front matter block against a caller-supplied
// JSON schema. The rule is inert until a schema is configured.
type schemaRule struct {
	compiled *jsonschema.Schema
}

func newSchemaRule(schema []byte) (*schemaRule, error) {
	if len(bytes.TrimSpace(schema)) == 0 {
		return &schemaRule{}, nil
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("lint: compile front matter schema: %w", err)
	}
	return &schemaRule{compiled: compiled}, nil
}

func (schemaRule) ID() string { return RuleFrontMatterSchema }

func (r *schemaRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	if r.compiled == nil || file.Post == nil {
		return nil
	}

	payload, err := jsonRoundTrip(file.Post.FrontMatter.Raw)
	if err != nil {
		return []interfaces.Issue{{
			Rule:     RuleFrontMatterSchema,
			Severity: interfaces.SeverityError,
			Path:     file.Path,
			Line:     1,
			Message:  fmt.Sprintf("front matter is not schema-checkable: %v", err),
		}}
	}

	if err := r.compiled.Validate(payload); err != nil {
		issues := []interfaces.Issue{}
		for _, finding := range collectValidationIssues(err) {
			issues = append(issues, interfaces.Issue{
				Rule:     RuleFrontMatterSchema,
				Severity: interfaces.SeverityError,
				Path:     file.Path,
				Line:     1,
				Message:  finding,
			})
		}
		return issues
	}
	return nil
}

func compileSchema(schema []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.schema.json", bytes.NewReader(schema)); err != nil {
		return nil, err
	}
	return compiler.Compile("frontmatter.schema.json")
}

// jsonRoundTrip converts YAML-decoded values into their JSON equivalents so
// the schema validator sees plain maps, strings, and numbers.
func jsonRoundTrip(raw map[string]any) (any, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func collectValidationIssues(err error) []string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	messages := []string{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "#"
			} else if !strings.HasPrefix(location, "#") {
				location = "#" + location
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, strings.TrimSpace(node.Message)))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return messages
}
