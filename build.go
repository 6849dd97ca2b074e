//go:build ignore

package main

import (
	"fmt"
	"io/fs"
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
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/javascript", js.Minify)

	if err := os.MkdirAll("dist/templates", 0755); err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll("dist/static", 0755); err != nil {
		log.Fatal(err)
	}

	// Minify game templates
	err := filepath.WalkDir("templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".html") {
			return minifyFile(m, path, "dist/"+path, "text/html")
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error minifying templates:", err)
	}

	// Minify CSS files
	err = filepath.WalkDir("static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".css") {
			return minifyFile(m, path, "dist/"+path, "text/css")
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error minifying CSS:", err)
	}

	// Minify JS files
	err = filepath.WalkDir("static", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".js") {
			return minifyFile(m, path, "dist/"+path, "application/javascript")
		}
		return nil
	})
	if err != nil {
		log.Fatal("Error minifying JS:", err)
	}

	fmt.Println("Minification complete, files are in the 'dist' directory")
}

func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}

	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return err
	}

	ratio := float64(len(src)-len(minified)) / float64(len(src)) * 100
	fmt.Printf("%s: %d bytes -> %d bytes (%.1f%% reduction)\n",
		srcPath, len(src), len(minified), ratio)

	return nil
}
