package main

import (
	"fmt"
	"os"

	"trak/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(formatStr string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, formatStr, args...)
	return err
}
