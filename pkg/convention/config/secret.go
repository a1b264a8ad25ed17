package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/linecard/ship/internal/util"
)

const Redacted = "[redacted]"

var nameExp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

const (
	SourceEnv = "env"
	SourceSsm = "ssm"
)

// Values the deployed document processor reads at cold start.
var DefaultEnvironment = []string{
	"PINECONE_API_KEY",
	"PINECONE_INDEX_NAME",
	"OPENAI_API_KEY",
}

// Secret holds a sensitive value. Every rendering except Reveal is redacted.
type Secret struct {
	value string
}

func NewSecret(value string) Secret {
	return Secret{value: value}
}

func (s Secret) Reveal() string {
	return s.value
}

func (s Secret) String() string {
	return Redacted
}

func (s Secret) GoString() string {
	return Redacted
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(Redacted)
}

func (s Secret) MarshalYAML() (interface{}, error) {
	return Redacted, nil
}

// Ref points at the source of one function environment variable.
//
//	NAME                 process env NAME
//	NAME=env:OTHER       process env OTHER
//	NAME=ssm:/a/b        SSM parameter /a/b, decrypted
//	NAME?                optional, omitted when unset
//
// Entries never echo back in errors, a pasted literal would land in the logs.
// In a yaml deploy file, optional entries must be block sequence items or
// quoted: a flow sequence like [A, B?] does not parse.
type Ref struct {
	Name     string
	Source   string
	Key      string
	Optional bool
}

func (r Ref) String() string {
	name := r.Name
	if r.Optional {
		name += "?"
	}
	return name + "=" + r.Source + ":" + r.Key
}

func ParseRef(entry string) (Ref, error) {
	entry = util.Chomp(entry)

	name, source, hasSource := strings.Cut(entry, "=")

	ref := Ref{Name: name}
	if strings.HasSuffix(ref.Name, "?") {
		ref.Optional = true
		ref.Name = strings.TrimSuffix(ref.Name, "?")
	}

	if ref.Name == "" {
		return Ref{}, errors.New("environment entry has no variable name")
	}

	if !nameExp.MatchString(ref.Name) {
		return Ref{}, errors.New("environment entry does not start with a variable name")
	}

	if !hasSource {
		ref.Source = SourceEnv
		ref.Key = ref.Name
		return ref, nil
	}

	kind, key, ok := strings.Cut(source, ":")
	if !ok || key == "" {
		return Ref{}, fmt.Errorf("environment entry %s must reference env:<VAR> or ssm:<parameter>, literal values are not accepted", ref.Name)
	}

	switch kind {
	case SourceEnv, SourceSsm:
		ref.Source = kind
		ref.Key = key
	default:
		return Ref{}, fmt.Errorf("environment entry %s has an unknown source, use env:<VAR> or ssm:<parameter>", ref.Name)
	}

	return ref, nil
}

func ParseRefs(entries []string) ([]Ref, error) {
	var refs []Ref
	seen := map[string]bool{}

	for i, entry := range entries {
		ref, err := ParseRef(entry)
		if err != nil {
			return nil, fmt.Errorf("environment entry %d: %w", i+1, err)
		}

		if seen[ref.Name] {
			return nil, fmt.Errorf("environment variable %s declared twice", ref.Name)
		}
		seen[ref.Name] = true

		refs = append(refs, ref)
	}

	return refs, nil
}

type ParameterService interface {
	Parameter(ctx context.Context, name string) (string, bool, error)
}

type LookupEnv func(key string) (string, bool)

// ResolveEnvironment reads every ref from its source. Missing required values are errors.
func ResolveEnvironment(ctx context.Context, refs []Ref, lookup LookupEnv, parameters ParameterService) (map[string]Secret, error) {
	resolved := make(map[string]Secret, len(refs))

	for _, ref := range refs {
		var value string
		var found bool
		var err error

		switch ref.Source {
		case SourceEnv:
			value, found = lookup(ref.Key)
		case SourceSsm:
			if parameters == nil {
				return nil, fmt.Errorf("%s references SSM but no parameter client is configured", ref.Name)
			}
			if value, found, err = parameters.Parameter(ctx, ref.Key); err != nil {
				return nil, fmt.Errorf("failed to read %s from ssm: %w", ref.Name, err)
			}
		default:
			return nil, fmt.Errorf("environment entry %s has unknown source %q", ref.Name, ref.Source)
		}

		if !found || value == "" {
			if ref.Optional {
				continue
			}
			return nil, fmt.Errorf("no value for %s (%s:%s)", ref.Name, ref.Source, ref.Key)
		}

		resolved[ref.Name] = NewSecret(value)
	}

	return resolved, nil
}
