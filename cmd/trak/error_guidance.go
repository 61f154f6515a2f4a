package main

import (
	"context"
	"errors"
	"net"

	"trak/internal/api"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var gatewayErr *api.GatewayError
	if errors.As(err, &gatewayErr) {
		switch {
		case gatewayErr.Status == 401:
			lines = append(lines, "hint: verify TRAK_API_TOKEN matches the server's token.")
		case gatewayErr.Status == 501:
			lines = append(lines, "hint: configure [jira] in .trak.toml on the server to enable Jira commands.")
		case gatewayErr.Status >= 500:
			lines = append(lines, "hint: server returned an error; check server logs for details.")
		case gatewayErr.Status == 0:
			lines = append(lines,
				"hint: ensure a trak server is running at TRAK_API_URL.",
				"hint: start a local server manually with: trak srv",
			)
		}
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check server health or increase TRAK_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: ensure a trak server is running at TRAK_API_URL.",
			"hint: you can increase TRAK_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
