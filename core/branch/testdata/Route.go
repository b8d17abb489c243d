package testdata

import (
	"bufio"
	"os"
	"strings"
)

// Route represents a single line in the router fixture file.
type Route struct {
	Host   string
	Method string
	Path   string
}

// Routes loads all routes from a text file of "host method path"
// lines. Blank lines and # comments are skipped.
func Routes(fileName string) []Route {
	var routes []Route

	for line := range Lines(fileName) {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 3 {
			continue
		}

		routes = append(routes, Route{
			Host:   parts[0],
			Method: parts[1],
			Path:   parts[2],
		})
	}

	return routes
}

// Lines is a utility function to easily read every line in a text file.
func Lines(fileName string) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)
		file, err := os.Open(fileName)

		if err != nil {
			return
		}

		defer file.Close()
		scanner := bufio.NewScanner(file)

		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}
