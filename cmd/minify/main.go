// Command minify compresses a single asset file. The build pipeline
// (build.go) walks whole directories; this is the one-off variant.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js, or html)")
	)
	flag.Parse()

	if *inputFile == "" || *outputFile == "" || *fileType == "" {
		log.Fatal("Usage: go run cmd/minify/main.go -input=<file> -output=<file> -type=<css|js|html>")
	}

	if err := os.MkdirAll(filepath.Dir(*outputFile), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	input, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	m := minify.New()
	var mediaType string
	switch strings.ToLower(*fileType) {
	case "css":
		m.AddFunc("text/css", css.Minify)
		mediaType = "text/css"
	case "js":
		m.AddFunc("application/javascript", js.Minify)
		mediaType = "application/javascript"
	case "html":
		m.AddFunc("text/html", html.Minify)
		mediaType = "text/html"
	default:
		log.Fatalf("Unsupported file type: %s (supported: css, js, html)", *fileType)
	}

	minified, err := m.String(mediaType, string(input))
	if err != nil {
		log.Fatalf("Failed to minify %s: %v", *inputFile, err)
	}
	if err := os.WriteFile(*outputFile, []byte(minified), 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
}
