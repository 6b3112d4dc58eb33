// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile turns loosely-typed candidate payloads into the
// canonical types.CandidateProfile. List fields may arrive as
// comma-separated strings or as lists; after Decode they are always
// trimmed lists without empty items.
package profile

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/internmatch/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode converts a payload into a profile. Scalars are coerced to
// strings; string lists are split on commas.
func Decode(payload map[string]any) (types.CandidateProfile, error) {
	var p types.CandidateProfile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return p, fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return p, types.WrapError(types.KindInvalidInput, err, "decoding candidate profile")
	}
	return Canonical(p), nil
}

// Canonical trims every field and drops empty list items.
func Canonical(p types.CandidateProfile) types.CandidateProfile {
	p.Skills = cleanList(p.Skills)
	p.Aspirations = cleanList(p.Aspirations)
	p.EducationLevel = strings.TrimSpace(p.EducationLevel)
	p.SectorInterest = strings.TrimSpace(p.SectorInterest)
	p.LocationPreference = strings.TrimSpace(p.LocationPreference)
	p.Experience = strings.TrimSpace(p.Experience)
	return p
}

// Validate checks that the required fields are present. The error names
// every missing field.
func Validate(p types.CandidateProfile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return types.WrapError(types.KindInvalidInput, err, "validating candidate profile")
	}
	seen := make(map[string]struct{})
	var fields []string
	for _, fe := range verrs {
		name := strings.SplitN(fe.Field(), "[", 2)[0]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return types.NewError(types.KindInvalidInput, "missing required fields: %s", strings.Join(fields, ", "))
}

// Parse is Decode followed by Validate.
func Parse(payload map[string]any) (types.CandidateProfile, error) {
	p, err := Decode(payload)
	if err != nil {
		return p, err
	}
	return p, Validate(p)
}

// LoadFile reads a YAML or JSON profile document and decodes it. The
// result is not validated, so callers can merge flags first.
func LoadFile(path string) (types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CandidateProfile{}, fmt.Errorf("reading profile %s: %w", path, err)
	}
	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return types.CandidateProfile{}, types.WrapError(types.KindInvalidInput, err, "parsing profile %s", path)
	}
	return Decode(payload)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
