package api

import (
	_ "embed"
	"html/template"
	"log"
)

//go:embed index.html
var indexSource string

var indexPage = parse("index", indexSource)

type pageData struct {
	MaxUploadMB int64
}

func parse(name, text string) *template.Template {
	tmpl, err := template.New(name).Parse(text)

	if err != nil {
		log.Fatal(err)
	}

	return tmpl
}
