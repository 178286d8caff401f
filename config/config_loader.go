package config

import (
	"encoding"
	"errors"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yalogger"
)

// LoadConfigStructFromEnv loads environment variables into a struct and exits
// the program through log.Fatalf on failure.
//
// This is a wrapper around LoadConfigStructFromEnvHandlingError.
func LoadConfigStructFromEnv[T any](instance *T, prefix string, log yalogger.Logger) {
	safetyCheck(&log)

	err := LoadConfigStructFromEnvHandlingError(instance, prefix, log)
	if err != nil {
		log.Fatalf("Failed to load config struct from env: %v", err)
	}
}

// LoadConfigStructFromEnvHandlingError loads environment variables into a struct.
// Keys are the field names converted to SCREAMING_SNAKE_CASE, prefixed with
// prefix and, for nested structs, with the parent field's key. A .env file in
// the working directory is read first; real environment variables win over it.
//
// For every field, in order:
//   - the environment variable, if set, is parsed into the field;
//   - otherwise a zero field takes its `default:"..."` tag;
//   - otherwise a zero field is required and ErrValueIsRequired is returned.
//
// Supported fields: string, bool, ints, uints, floats, time.Duration, any
// encoding.TextUnmarshaler, slices of those (comma separated) and nested
// structs.
//
// Example usage:
//
//	type Config struct {
//		Bits     int             `default:"2048"`
//		Timeout  time.Duration   `default:"30s"`
//		LogLevel yalogger.Level  `default:"info"`
//	}
//
//	var cfg Config
//
//	// reads YARSA_BITS, YARSA_TIMEOUT, YARSA_LOG_LEVEL
//	if err := config.LoadConfigStructFromEnvHandlingError(&cfg, "YARSA", log); err != nil {
//		// handle error
//	}
func LoadConfigStructFromEnvHandlingError[T any](
	instance *T,
	prefix string,
	log yalogger.Logger,
) yaerrors.Error {
	safetyCheck(&log)

	if err := loadDotEnv(DotEnvFile); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}

	value := reflect.ValueOf(instance).Elem()
	if value.Kind() != reflect.Struct {
		return yaerrors.FromErrorWithLog(
			http.StatusInternalServerError,
			ErrConfigStructMustBeStruct,
			fmt.Sprintf("config loader, got %T", instance),
			log,
		)
	}

	return loadConfigStructFromEnv(value, toScreamingSnakeCase(prefix), log)
}

// loadConfigStructFromEnv walks the fields of structValue, recursing into
// nested structs that are not themselves parsable from text.
func loadConfigStructFromEnv(
	structValue reflect.Value,
	keyPath string,
	log yalogger.Logger,
) yaerrors.Error {
	structType := structValue.Type()

	for i := range structValue.NumField() {
		field := structType.Field(i)
		fieldVal := structValue.Field(i)

		if !fieldVal.CanSet() {
			log.Debugf("Field %s cannot be set", field.Name)

			continue
		}

		envKey := toScreamingSnakeCase(field.Name)
		if keyPath != "" {
			envKey = keyPath + "_" + envKey
		}

		if field.Type.Kind() == reflect.Struct && !isTextField(fieldVal) {
			if err := loadConfigStructFromEnv(fieldVal, envKey, log); err != nil {
				return err.WrapWithLog("failed to load struct field "+field.Name, log)
			}

			continue
		}

		defaultValStr, hasDefault := field.Tag.Lookup(DefaultTagName)

		raw, fromEnv := os.LookupEnv(envKey)

		switch {
		case fromEnv:
		case fieldVal.IsZero() && hasDefault:
			raw = defaultValStr
		case fieldVal.IsZero():
			return yaerrors.FromErrorWithLog(
				http.StatusInternalServerError,
				ErrValueIsRequired,
				fmt.Sprintf("config loader: %s has no value and no default", envKey),
				log,
			)
		default:
			continue
		}

		if err := setField(fieldVal, raw); err != nil {
			source := "env"
			if !fromEnv {
				source = "default"
			}

			return err.WrapWithLog(
				fmt.Sprintf("config loader: field %s from %s", field.Name, source),
				log,
			)
		}
	}

	return nil
}

func isTextField(v reflect.Value) bool {
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)

	return ok
}

// setField parses raw into v according to v's type.
func setField(v reflect.Value, raw string) yaerrors.Error {
	if v.CanAddr() {
		if unmarshaler, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := unmarshaler.UnmarshalText([]byte(raw)); err != nil {
				return invalidValue(v, raw, err)
			}

			return nil
		}
	}

	if v.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return invalidValue(v, raw, err)
		}

		v.SetInt(int64(d))

		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return invalidValue(v, raw, err)
		}

		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return invalidValue(v, raw, err)
		}

		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return invalidValue(v, raw, err)
		}

		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return invalidValue(v, raw, err)
		}

		v.SetFloat(f)
	case reflect.Slice:
		return setSlice(v, raw)
	case reflect.Map:
		return setMap(v, raw)
	default:
		return yaerrors.FromError(
			http.StatusInternalServerError,
			ErrUnsupportedFieldType,
			fmt.Sprintf("[CONFIG] cannot load %s", v.Type()),
		)
	}

	return nil
}

func setSlice(v reflect.Value, raw string) yaerrors.Error {
	if strings.TrimSpace(raw) == "" {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))

		return nil
	}

	parts := strings.Split(raw, SliceSeparator)
	slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))

	for i, part := range parts {
		if err := setField(slice.Index(i), strings.TrimSpace(part)); err != nil {
			return err.Wrap(fmt.Sprintf("[CONFIG] element %d", i))
		}
	}

	v.Set(slice)

	return nil
}

// setMap parses "k1:v1,k2:v2" into v, each key and value by its own type.
func setMap(v reflect.Value, raw string) yaerrors.Error {
	result := reflect.MakeMap(v.Type())

	if strings.TrimSpace(raw) == "" {
		v.Set(result)

		return nil
	}

	for i, entry := range strings.Split(raw, SliceSeparator) {
		parts := strings.Split(entry, MapKVSeparator)
		if len(parts) != MapKVParts {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				ErrInvalidMapEntry,
				fmt.Sprintf("[CONFIG] entry %d `%s`: expected %d parts, got %d", i, entry, MapKVParts, len(parts)),
			)
		}

		key := reflect.New(v.Type().Key()).Elem()
		if err := setField(key, strings.TrimSpace(parts[0])); err != nil {
			return err.Wrap(fmt.Sprintf("[CONFIG] key of entry %d", i))
		}

		val := reflect.New(v.Type().Elem()).Elem()
		if err := setField(val, strings.TrimSpace(parts[1])); err != nil {
			return err.Wrap(fmt.Sprintf("[CONFIG] value of entry %d", i))
		}

		result.SetMapIndex(key, val)
	}

	v.Set(result)

	return nil
}

func invalidValue(v reflect.Value, raw string, cause error) yaerrors.Error {
	return yaerrors.FromError(
		http.StatusInternalServerError,
		errors.Join(ErrInvalidFieldValue, cause),
		fmt.Sprintf("[CONFIG] `%s` is not a valid %s", raw, v.Type()),
	)
}
