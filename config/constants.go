package config

import (
	"reflect"
	"regexp"
	"time"
)

const (
	DefaultTagName = "default"
	DotEnvFile     = ".env"
	DotEnvKVParts  = 2
	SliceSeparator = ","
	MapKVSeparator = ":"
	MapKVParts     = 2
)

const (
	dotEnvComment = "#"
	dotEnvExport  = "export "
)

var (
	matchFirstCap = regexp.MustCompile("(.)([A-Z][a-z]+)")
	matchAllCap   = regexp.MustCompile("([a-z0-9])([A-Z])")
)

var durationType = reflect.TypeOf(time.Duration(0))
