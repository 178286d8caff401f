package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

// loadDotEnv exports KEY=VALUE lines from path into the process environment.
// Variables already set win over the file. A missing file is not an error.
//
// Accepted syntax: blank lines, `#` comments, an optional `export ` prefix and
// values wrapped in single or double quotes.
func loadDotEnv(path string) yaerrors.Error {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[CONFIG] failed to open %s", path),
		)
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())

		if text == "" || strings.HasPrefix(text, dotEnvComment) {
			continue
		}

		text = strings.TrimPrefix(text, dotEnvExport)

		parts := strings.SplitN(text, "=", DotEnvKVParts)
		if len(parts) != DotEnvKVParts || strings.TrimSpace(parts[0]) == "" {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				ErrInvalidDotEnvFileFormat,
				fmt.Sprintf("[CONFIG] %s:%d: expected KEY=VALUE", path, line),
			)
		}

		key := strings.TrimSpace(parts[0])

		if _, exists := os.LookupEnv(key); exists {
			continue
		}

		if err := os.Setenv(key, unquote(strings.TrimSpace(parts[1]))); err != nil {
			return yaerrors.FromError(
				http.StatusInternalServerError,
				err,
				fmt.Sprintf("[CONFIG] %s:%d: failed to export %s", path, line, key),
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return yaerrors.FromError(
			http.StatusInternalServerError,
			err,
			fmt.Sprintf("[CONFIG] failed to read %s", path),
		)
	}

	return nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}

	return value
}
