//go:build !js

package assets

const bundledDir = ""
