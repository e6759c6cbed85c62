//go:build js

package assets

// Web builds serve assets beside the page and cannot stat them.
const bundledDir = "assets"
