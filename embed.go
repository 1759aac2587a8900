package folio

import (
	"embed"
	"io/fs"
)

//go:embed static/*
var embeddedStatic embed.FS

// StaticAssets holds the default stylesheet served under /static.
var StaticAssets, _ = fs.Sub(embeddedStatic, "static")
