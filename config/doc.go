// Package config loads chksum defaults from a YAML or JSON file. The file
// format is chosen by extension; values are validated on load so that the
// command line only ever sees a usable Config.
package config
