// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// FlagsFromParams creates a [pflag.FlagSet] with flags bound to the tagged
// fields of params. params must be a pointer to a struct. Panics on
// invalid input (programming error, not runtime data).
//
// This is the convenience wrapper for the common pattern:
//
//	var params fetchParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        return cli.FlagsFromParams("fetch", &params)
//	    },
//	    Run: func(ctx context.Context, args []string) error {
//	        // params fields are populated after flag parsing
//	    },
//	}
func FlagsFromParams(name string, params any) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	if err := BindFlags(params, flagSet); err != nil {
		panic(fmt.Sprintf("cli.FlagsFromParams(%q): %v", name, err))
	}
	return flagSet
}

// BindFlags registers pflag entries for each tagged field in params.
// params must be a pointer to a struct.
//
// # Struct tags
//
//   - flag:"name" or flag:"name,n" -- the long flag name and optional
//     single-character shorthand. Fields without a flag tag are skipped.
//   - desc:"help text" -- the flag's help description, also used as the
//     JSON Schema description by [ParamsSchema].
//   - default:"value" -- the default value, parsed according to the
//     field's Go type. If omitted, the type's zero value is used.
//   - env:"NAME" -- an environment variable consulted by [ApplyEnv] when
//     the flag was not given on the command line.
//
// # Supported field types
//
// string, bool, int, [time.Duration], []string.
//
// Embedded struct fields are bound recursively, which is how commands
// share global flags such as --config and --verbose.
func BindFlags(params any, flagSet *pflag.FlagSet) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return bindStructFields(value.Elem(), flagSet)
}

func bindStructFields(structValue reflect.Value, flagSet *pflag.FlagSet) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := bindStructFields(fieldValue, flagSet); err != nil {
				return fmt.Errorf("embedded %s: %w", field.Name, err)
			}
			continue
		}

		flagTag := field.Tag.Get("flag")
		if flagTag == "" {
			continue
		}
		if !fieldValue.CanAddr() {
			return fmt.Errorf("field %s: not addressable", field.Name)
		}

		name, shorthand := parseFlagTag(flagTag)
		if err := bindField(fieldValue, flagSet, name, shorthand, field.Tag.Get("desc"), field.Tag.Get("default")); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}

	return nil
}

// parseFlagTag splits "name" into ("name", "") and "name,n" into ("name", "n").
func parseFlagTag(tag string) (string, string) {
	name, shorthand, _ := strings.Cut(tag, ",")
	return name, shorthand
}

func bindField(fieldValue reflect.Value, flagSet *pflag.FlagSet, name, shorthand, description, defaultString string) error {
	switch target := fieldValue.Addr().Interface().(type) {
	case *string:
		flagSet.StringVarP(target, name, shorthand, defaultString, description)

	case *bool:
		defaultValue, err := parseBoolDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.BoolVarP(target, name, shorthand, defaultValue, description)

	case *int:
		defaultValue, err := parseIntDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.IntVarP(target, name, shorthand, defaultValue, description)

	case *time.Duration:
		defaultValue, err := parseDurationDefault(defaultString)
		if err != nil {
			return fmt.Errorf("default for --%s: %w", name, err)
		}
		flagSet.DurationVarP(target, name, shorthand, defaultValue, description)

	case *[]string:
		var defaultValue []string
		if defaultString != "" {
			defaultValue = strings.Split(defaultString, ",")
		}
		flagSet.StringSliceVarP(target, name, shorthand, defaultValue, description)

	default:
		return fmt.Errorf("unsupported type %s for flag --%s", fieldValue.Type(), name)
	}

	return nil
}

// ApplyEnv fills fields carrying an env tag from the environment, for
// every such field whose flag was not set explicitly on the command
// line. lookup is usually os.LookupEnv. Empty environment values are
// ignored. Call after the flag set has been parsed.
func ApplyEnv(params any, flagSet *pflag.FlagSet, lookup func(string) (string, bool)) error {
	value := reflect.ValueOf(params)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("params must be a pointer to a struct, got %T", params)
	}
	return applyEnvFields(value.Elem(), flagSet, lookup)
}

func applyEnvFields(structValue reflect.Value, flagSet *pflag.FlagSet, lookup func(string) (string, bool)) error {
	structType := structValue.Type()

	for i := range structType.NumField() {
		field := structType.Field(i)
		fieldValue := structValue.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			if err := applyEnvFields(fieldValue, flagSet, lookup); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		if flagName, _ := parseFlagTag(field.Tag.Get("flag")); flagName != "" && flagSet.Changed(flagName) {
			continue
		}
		raw, ok := lookup(envName)
		if !ok || raw == "" {
			continue
		}
		if err := setFromString(fieldValue, raw); err != nil {
			return Validation("invalid value %q for %s: %v", raw, envName, err)
		}
	}

	return nil
}

func setFromString(fieldValue reflect.Value, raw string) error {
	switch target := fieldValue.Addr().Interface().(type) {
	case *string:
		*target = raw
	case *bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*target = parsed
	case *int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*target = parsed
	case *time.Duration:
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*target = parsed
	case *[]string:
		*target = strings.Split(raw, ",")
	default:
		return fmt.Errorf("unsupported type %s", fieldValue.Type())
	}
	return nil
}

func parseBoolDefault(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseIntDefault(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseDurationDefault(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
