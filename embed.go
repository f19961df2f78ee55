// Package register provides embedded runtime resources such as the starter
// configuration written by "register init".
package register

import (
	"embed"
	"io/fs"
)

//go:embed templates/config.yaml
var rawTemplates embed.FS

// Templates is the embedded templates filesystem with the "templates/" prefix stripped.
var Templates = mustSub(rawTemplates, "templates")

// ConfigTemplate returns the starter config.yaml.
func ConfigTemplate() []byte {
	data, err := fs.ReadFile(Templates, "config.yaml")
	if err != nil {
		panic(err)
	}
	return data
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
